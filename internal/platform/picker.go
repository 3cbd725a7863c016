package platform

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

type pickResult struct {
	path string
	err  error
}

// FolderPicker shows the Fyne folder dialog on a parent window.
type FolderPicker struct {
	parent fyne.Window
	show   func(callback func(fyne.ListableURI, error), parent fyne.Window)
}

// NewFolderPicker creates a picker attached to parent.
func NewFolderPicker(parent fyne.Window) *FolderPicker {
	return &FolderPicker{parent: parent, show: dialog.ShowFolderOpen}
}

// ChooseDirectory opens the dialog and waits for the user. It returns "" when
// the dialog is dismissed. Must not be called from the Fyne event thread.
func (picker *FolderPicker) ChooseDirectory(ctx context.Context) (string, error) {
	results := make(chan pickResult, 1)
	fyne.Do(func() {
		picker.show(func(uri fyne.ListableURI, err error) {
			if err != nil {
				results <- pickResult{err: err}
				return
			}
			if uri == nil {
				results <- pickResult{}
				return
			}
			results <- pickResult{path: uri.Path()}
		}, picker.parent)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-results:
		return result.path, result.err
	}
}
