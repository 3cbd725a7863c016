package panel

import (
	"context"
	"log"
	"unicode/utf8"

	"streamcountdown/internal/core/countdown"
	"streamcountdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const noTargetText = "No output file selected"

// Window is the countdown editor and display.
type Window struct {
	window     fyne.Window
	controller *countdown.Controller
	onComplete func(message string)

	display      *canvas.Text
	stateLabel   *widget.Label
	timeEntry    *widget.Entry
	formatEntry  *widget.Entry
	messageEntry *widget.Entry
	timeError    *widget.Label
	formatError  *widget.Label
	messageError *widget.Label
	savingLabel  *widget.Label
	pathLabel    *widget.Label
	saveButton   *widget.Button
	startButton  *widget.Button
	pauseButton  *widget.Button
	stopButton   *widget.Button
	browseButton *widget.Button

	lastTimeLen int
}

// New creates the countdown window for controller.
func New(app fyne.App, controller *countdown.Controller) *Window {
	window := app.NewWindow("Stream Countdown")

	display := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	display.Alignment = fyne.TextAlignCenter
	display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	display.TextSize = 42

	panel := &Window{
		window:       window,
		controller:   controller,
		display:      display,
		stateLabel:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		timeEntry:    widget.NewEntry(),
		formatEntry:  widget.NewEntry(),
		messageEntry: widget.NewEntry(),
		timeError:    newErrorLabel("Use HH:MM:SS with digits only"),
		formatError:  newErrorLabel("Format is required (max 10 characters)"),
		messageError: newErrorLabel("Message can be at most 13 characters"),
		savingLabel:  widget.NewLabel("Saved"),
		pathLabel:    widget.NewLabel(noTargetText),
	}
	panel.savingLabel.Hide()
	panel.pathLabel.Wrapping = fyne.TextWrapBreak

	panel.timeEntry.SetPlaceHolder("HH:MM:SS")
	panel.formatEntry.SetPlaceHolder(model.DefaultFormat)
	panel.messageEntry.SetPlaceHolder("Completion message")

	draft := controller.Draft()
	panel.timeEntry.SetText(draft.TimeInput)
	panel.formatEntry.SetText(draft.Format)
	panel.messageEntry.SetText(draft.CompletionMessage)
	panel.lastTimeLen = utf8.RuneCountInString(draft.TimeInput)
	panel.timeEntry.OnChanged = panel.handleTimeChanged

	panel.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), panel.handleSave)
	panel.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		controller.Start()
		panel.Refresh()
	})
	panel.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		controller.TogglePause()
		panel.Refresh()
	})
	panel.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		controller.Stop()
		panel.Refresh()
	})
	panel.browseButton = widget.NewButtonWithIcon("Browse...", theme.FolderOpenIcon(), panel.handleBrowse)

	form := widget.NewForm(
		widget.NewFormItem("Time", container.NewVBox(panel.timeEntry, panel.timeError)),
		widget.NewFormItem("Format", container.NewVBox(panel.formatEntry, panel.formatError)),
		widget.NewFormItem("Message", container.NewVBox(panel.messageEntry, panel.messageError)),
	)

	controls := container.NewHBox(panel.startButton, panel.pauseButton, panel.stopButton)
	output := container.NewBorder(nil, nil, nil, panel.browseButton, panel.pathLabel)
	footer := container.NewHBox(panel.saveButton, panel.savingLabel, layout.NewSpacer())

	content := container.NewVBox(
		display,
		panel.stateLabel,
		container.NewCenter(controls),
		widget.NewSeparator(),
		form,
		output,
		footer,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 420))

	panel.Refresh()
	return panel
}

func newErrorLabel(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Importance = widget.DangerImportance
	label.Hide()
	return label
}

// SetOnComplete sets the handler invoked when a countdown expires.
func (panel *Window) SetOnComplete(handler func(message string)) {
	panel.onComplete = handler
}

// SetCloseIntercept forwards to the underlying window.
func (panel *Window) SetCloseIntercept(handler func()) {
	panel.window.SetCloseIntercept(handler)
}

// Window exposes the native window, e.g. as a dialog parent.
func (panel *Window) Window() fyne.Window {
	return panel.window
}

// Show displays the window.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Hide hides the window.
func (panel *Window) Hide() {
	panel.window.Hide()
}

// Apply handles a controller event. Must run on the Fyne thread.
func (panel *Window) Apply(event countdown.Event) {
	if event.Type == countdown.EventCompleted && panel.onComplete != nil {
		panel.onComplete(event.Message)
	}
	panel.Refresh()
}

// Refresh redraws every field from the controller state.
func (panel *Window) Refresh() {
	panel.display.Text = panel.controller.Display()
	panel.display.Refresh()

	state := panel.controller.State()
	panel.stateLabel.SetText(stateText(state))
	if state == countdown.StateRunning {
		panel.pauseButton.SetText("Pause")
		panel.pauseButton.SetIcon(theme.MediaPauseIcon())
	} else {
		panel.pauseButton.SetText("Resume")
		panel.pauseButton.SetIcon(theme.MediaPlayIcon())
	}

	config := panel.controller.Config()
	if config.RemainingSeconds > 0 {
		panel.startButton.Enable()
	} else {
		panel.startButton.Disable()
	}
	if config.TargetPath == "" {
		panel.pathLabel.SetText(noTargetText)
	} else {
		panel.pathLabel.SetText(config.TargetPath)
	}

	errs := panel.controller.Errors()
	setVisible(panel.timeError, errs.Time)
	setVisible(panel.formatError, errs.Format)
	setVisible(panel.messageError, errs.Message)

	saving := panel.controller.Saving()
	setVisible(panel.savingLabel, saving)
	if saving {
		panel.saveButton.Disable()
	} else {
		panel.saveButton.Enable()
	}
}

func (panel *Window) handleTimeChanged(text string) {
	length := utf8.RuneCountInString(text)
	grew := length > panel.lastTimeLen
	panel.lastTimeLen = length
	if !grew {
		return
	}
	formatted := countdown.TypeTime(text)
	if formatted == text {
		return
	}
	panel.timeEntry.SetText(formatted)
	panel.timeEntry.CursorColumn = utf8.RuneCountInString(formatted)
	panel.timeEntry.Refresh()
}

func (panel *Window) handleSave() {
	draft := model.Draft{
		TimeInput:         panel.timeEntry.Text,
		Format:            panel.formatEntry.Text,
		CompletionMessage: panel.messageEntry.Text,
	}
	if err := panel.controller.Save(draft); err != nil {
		log.Printf("save rejected: %v", err)
	}
	panel.Refresh()
}

func (panel *Window) handleBrowse() {
	go func() {
		if _, err := panel.controller.Browse(context.Background()); err != nil {
			log.Printf("browse: %v", err)
		}
		fyne.Do(panel.Refresh)
	}()
}

func stateText(state countdown.State) string {
	switch state {
	case countdown.StateRunning:
		return "Running"
	case countdown.StatePaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

func setVisible(object fyne.CanvasObject, visible bool) {
	if visible {
		object.Show()
		return
	}
	object.Hide()
}
