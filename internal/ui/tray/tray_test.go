package tray

import (
	"testing"

	"streamcountdown/internal/core/countdown"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type menuRecorder struct {
	menus []*fyne.Menu
}

func (recorder *menuRecorder) SetSystemTrayMenu(menu *fyne.Menu) {
	recorder.menus = append(recorder.menus, menu)
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item missing", "label %q", label)
	return nil
}

func TestUpdateReflectsState(t *testing.T) {
	recorder := &menuRecorder{}
	manager := New(recorder, Callbacks{})
	require.Len(t, recorder.menus, 1)

	manager.Update("00:04:59", countdown.StateRunning, 299)
	menu := manager.Menu()
	assert.Same(t, menu, recorder.menus[len(recorder.menus)-1])
	assert.Equal(t, "Status: 00:04:59 (running)", menu.Items[0].Label)
	assert.False(t, findItem(t, menu, "Pause").Disabled)
	assert.False(t, findItem(t, menu, "Stop").Disabled)

	manager.Update("00:04:59", countdown.StatePaused, 299)
	assert.False(t, findItem(t, manager.Menu(), "Resume").Disabled)
	assert.False(t, findItem(t, manager.Menu(), "Stop").Disabled)
}

func TestIdleWithSavedTimeAllowsResumeAndStop(t *testing.T) {
	manager := New(nil, Callbacks{})

	manager.Update("00:01:30", countdown.StateIdle, 90)
	menu := manager.Menu()
	assert.False(t, findItem(t, menu, "Resume").Disabled)
	assert.False(t, findItem(t, menu, "Start").Disabled)
	assert.False(t, findItem(t, menu, "Stop").Disabled)

	manager.Update("00:00:00", countdown.StateIdle, 0)
	menu = manager.Menu()
	assert.True(t, findItem(t, menu, "Resume").Disabled)
	assert.True(t, findItem(t, menu, "Start").Disabled)
	assert.False(t, findItem(t, menu, "Stop").Disabled)
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnStart:       func() { calls = append(calls, "start") },
		OnTogglePause: func() { calls = append(calls, "toggle") },
		OnStop:        func() { calls = append(calls, "stop") },
		OnQuit:        func() { calls = append(calls, "quit") },
	})
	manager.Update("00:01:00", countdown.StateRunning, 60)
	menu := manager.Menu()

	for _, label := range []string{"Show", "Start", "Pause", "Stop", "Quit"} {
		findItem(t, menu, label).Action()
	}
	assert.Equal(t, []string{"show", "start", "toggle", "stop", "quit"}, calls)
}
