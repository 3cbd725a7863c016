package tray

import (
	"fmt"

	"streamcountdown/internal/core/countdown"

	"fyne.io/fyne/v2"
)

// MenuSetter receives the rebuilt tray menu. desktop.App satisfies it.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnTogglePause func()
	OnStop        func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        MenuSetter
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	display    string
	state      countdown.State
	remaining  int
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     countdown.StateIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))

	manager.refreshItems()
	return manager
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

// Update mirrors the countdown display, state and remaining seconds in the menu.
func (manager *Manager) Update(display string, state countdown.State, remaining int) {
	manager.display = display
	manager.state = state
	manager.remaining = remaining
	manager.refreshItems()
}

// Menu returns the menu last handed to the tray.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshItems() {
	status := manager.display
	if status == "" {
		status = "starting..."
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s (%s)", status, manager.state)

	switch manager.state {
	case countdown.StateRunning:
		manager.pauseItem.Label = "Pause"
		manager.pauseItem.Disabled = false
	default:
		manager.pauseItem.Label = "Resume"
		manager.pauseItem.Disabled = manager.remaining <= 0
	}
	manager.startItem.Disabled = manager.remaining <= 0
	manager.stopItem.Disabled = false
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	manager.menu = fyne.NewMenu("StreamCountdown",
		manager.statusItem,
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
