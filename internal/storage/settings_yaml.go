package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// YAMLStore keeps string settings in a YAML file and rewrites it on every Set.
type YAMLStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenYAMLStore loads the settings file for appName from the user config directory.
// If the file does not exist, an empty store is returned.
func OpenYAMLStore(appName string) (*YAMLStore, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return nil, err
	}
	return OpenYAMLStoreAt(configPath)
}

// OpenYAMLStoreAt loads settings from an explicit file path.
func OpenYAMLStoreAt(configPath string) (*YAMLStore, error) {
	store := &YAMLStore{
		path:   configPath,
		values: make(map[string]string),
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &store.values); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	if store.values == nil {
		store.values = make(map[string]string)
	}
	return store, nil
}

// Path returns the backing file location.
func (store *YAMLStore) Path() string {
	return store.path
}

// Get returns the value stored under key.
func (store *YAMLStore) Get(key string) (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok
}

// Set stores value under key and writes the file.
func (store *YAMLStore) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	previous, existed := store.values[key]
	store.values[key] = value
	if err := store.saveLocked(); err != nil {
		if existed {
			store.values[key] = previous
		} else {
			delete(store.values, key)
		}
		return err
	}
	return nil
}

func (store *YAMLStore) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.values)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}
