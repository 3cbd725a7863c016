package main

import (
	"log"

	"streamcountdown/internal/core/countdown"
	"streamcountdown/internal/platform"
	"streamcountdown/internal/sink"
	"streamcountdown/internal/storage"
	"streamcountdown/internal/ui/overlay"
	"streamcountdown/internal/ui/panel"
	"streamcountdown/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const (
	appName = "StreamCountdown"
	appID   = "io.streamcountdown.app"
)

func main() {
	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())

	store := openSettings(fyneApp)
	controller := countdown.New(store, sink.NewFile(), countdown.Config{})
	defer controller.Close()

	mainWindow := panel.New(fyneApp, controller)
	controller.SetPicker(platform.NewFolderPicker(mainWindow.Window()))

	banner := overlay.New(fyneApp, overlay.DefaultConfig())
	mainWindow.SetOnComplete(banner.Notify)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnStart:       controller.Start,
			OnTogglePause: controller.TogglePause,
			OnStop:        controller.Stop,
			OnQuit: func() {
				controller.Close()
				fyneApp.Quit()
			},
		})
		trayManager.Update(controller.Display(), controller.State(), controller.Config().RemainingSeconds)
		desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	events := controller.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				mainWindow.Apply(event)
				if trayManager != nil {
					trayManager.Update(event.Display, event.State, event.Remaining)
				}
			})
		}
	}()

	mainWindow.Show()
	fyneApp.Run()
}

func openSettings(fyneApp fyne.App) countdown.SettingsStore {
	store, err := storage.OpenYAMLStore(appName)
	if err != nil {
		log.Printf("load settings: %v; falling back to app preferences", err)
		return storage.NewPreferencesStore(fyneApp.Preferences())
	}
	log.Printf("settings file: %s", store.Path())
	return store
}
