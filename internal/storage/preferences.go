package storage

import "fyne.io/fyne/v2"

// PreferencesStore adapts fyne.Preferences to the settings interface.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore wraps the application preferences.
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Get returns the value stored under key. Empty values count as missing.
func (store *PreferencesStore) Get(key string) (string, bool) {
	value := store.prefs.String(key)
	return value, value != ""
}

// Set stores value under key.
func (store *PreferencesStore) Set(key, value string) error {
	store.prefs.SetString(key, value)
	return nil
}
