package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLStoreMissingFileIsEmpty(t *testing.T) {
	store, err := OpenYAMLStoreAt(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	_, ok := store.Get("format")
	assert.False(t, ok)
}

func TestYAMLStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	store, err := OpenYAMLStoreAt(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("format", "mm:ss"))
	require.NoError(t, store.Set("seconds", "90"))

	reopened, err := OpenYAMLStoreAt(path)
	require.NoError(t, err)

	format, ok := reopened.Get("format")
	require.True(t, ok)
	assert.Equal(t, "mm:ss", format)

	seconds, ok := reopened.Get("seconds")
	require.True(t, ok)
	assert.Equal(t, "90", seconds)
}

func TestYAMLStoreRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unterminated"), 0o644))

	_, err := OpenYAMLStoreAt(path)
	assert.Error(t, err)
}

func TestMemoryStoreCopiesSeed(t *testing.T) {
	seed := map[string]string{"seconds": "5"}
	store := NewMemoryStore(seed)
	seed["seconds"] = "6"

	value, ok := store.Get("seconds")
	require.True(t, ok)
	assert.Equal(t, "5", value)

	require.NoError(t, store.Set("path", "/tmp/countdown.txt"))
	value, _ = store.Get("path")
	assert.Equal(t, "/tmp/countdown.txt", value)
}
