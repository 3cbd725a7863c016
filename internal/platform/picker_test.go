package platform

import (
	"context"
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPicker(t *testing.T, answer func(callback func(fyne.ListableURI, error))) *FolderPicker {
	t.Helper()
	app := test.NewTempApp(t)
	window := app.NewWindow("picker")
	picker := NewFolderPicker(window)
	picker.show = func(callback func(fyne.ListableURI, error), _ fyne.Window) {
		answer(callback)
	}
	return picker
}

func TestChooseDirectoryReturnsPath(t *testing.T) {
	dir := t.TempDir()
	picker := newTestPicker(t, func(callback func(fyne.ListableURI, error)) {
		uri, err := storage.ListerForURI(storage.NewFileURI(dir))
		if err != nil {
			callback(nil, err)
			return
		}
		callback(uri, nil)
	})

	path, err := picker.ChooseDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dir, path)
}

func TestChooseDirectoryCancelled(t *testing.T) {
	picker := newTestPicker(t, func(callback func(fyne.ListableURI, error)) {
		callback(nil, nil)
	})

	path, err := picker.ChooseDirectory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestChooseDirectoryError(t *testing.T) {
	failure := errors.New("portal unavailable")
	picker := newTestPicker(t, func(callback func(fyne.ListableURI, error)) {
		callback(nil, failure)
	})

	_, err := picker.ChooseDirectory(context.Background())
	assert.ErrorIs(t, err, failure)
}

func TestChooseDirectoryContextCancelled(t *testing.T) {
	picker := newTestPicker(t, func(func(fyne.ListableURI, error)) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := picker.ChooseDirectory(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
