package overlay

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines banner visuals.
type Config struct {
	Opacity  uint8
	Title    string
	AutoHide time.Duration
}

// DefaultConfig returns the banner defaults.
func DefaultConfig() Config {
	return Config{
		Opacity:  216,
		Title:    "Countdown finished",
		AutoHide: 8 * time.Second,
	}
}

// Window shows the completion message when a countdown expires.
type Window struct {
	app           fyne.App
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	messageLabel  *canvas.Text
	dismissButton *widget.Button

	mu        sync.Mutex
	hideTimer *time.Timer
	visible   bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden completion banner.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText(config.Title, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 16

	messageLabel := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	messageLabel.TextSize = 36

	banner := &Window{
		app:          app,
		window:       window,
		config:       config,
		background:   background,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
	}
	banner.dismissButton = widget.NewButton("Dismiss", banner.Hide)

	content := container.NewPadded(container.NewVBox(
		titleLabel,
		messageLabel,
		container.NewCenter(banner.dismissButton),
	))
	window.SetContent(container.NewStack(background, content))
	return banner
}

// Show displays message and schedules the auto-hide. Must run on the Fyne thread.
func (banner *Window) Show(message string) {
	banner.messageLabel.Text = message
	banner.messageLabel.Refresh()
	banner.window.Resize(banner.window.Content().MinSize().AddWidthHeight(48, 24))
	banner.window.CenterOnScreen()
	banner.window.Show()
	banner.window.RequestFocus()

	banner.mu.Lock()
	banner.visible = true
	if banner.hideTimer != nil {
		banner.hideTimer.Stop()
	}
	if banner.config.AutoHide > 0 {
		banner.hideTimer = time.AfterFunc(banner.config.AutoHide, func() {
			fyne.Do(banner.Hide)
		})
	}
	banner.mu.Unlock()
}

// Hide closes the banner. Must run on the Fyne thread.
func (banner *Window) Hide() {
	banner.mu.Lock()
	if banner.hideTimer != nil {
		banner.hideTimer.Stop()
		banner.hideTimer = nil
	}
	banner.visible = false
	banner.mu.Unlock()
	banner.window.Hide()
}

// Visible reports whether the banner is showing.
func (banner *Window) Visible() bool {
	banner.mu.Lock()
	defer banner.mu.Unlock()
	return banner.visible
}

// Message returns the text currently shown.
func (banner *Window) Message() string {
	return banner.messageLabel.Text
}

// Notify shows the banner and sends an OS notification. Empty messages are ignored.
func (banner *Window) Notify(message string) {
	if message == "" {
		return
	}
	banner.Show(message)
	banner.app.SendNotification(fyne.NewNotification(banner.config.Title, message))
}
