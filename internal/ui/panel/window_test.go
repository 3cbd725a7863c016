package panel

import (
	"testing"
	"time"

	"streamcountdown/internal/core/countdown"
	"streamcountdown/internal/core/model"
	"streamcountdown/internal/storage"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardSink struct{}

func (discardSink) Write(string, string) error { return nil }

func newTestPanel(t *testing.T, seed map[string]string) (*Window, *countdown.Controller) {
	t.Helper()
	app := test.NewTempApp(t)
	controller := countdown.New(storage.NewMemoryStore(seed), discardSink{}, countdown.Config{
		TickInterval:      time.Hour,
		SaveFeedbackDelay: time.Hour,
	})
	t.Cleanup(controller.Close)
	return New(app, controller), controller
}

func TestNewShowsPersistedState(t *testing.T) {
	panel, _ := newTestPanel(t, map[string]string{
		model.KeySeconds:           "90",
		model.KeyCompletionMessage: "LIVE",
		model.KeyPath:              "/stream/countdown.txt",
	})

	assert.Equal(t, "00:01:30", panel.display.Text)
	assert.Equal(t, "00:01:30", panel.timeEntry.Text)
	assert.Equal(t, model.DefaultFormat, panel.formatEntry.Text)
	assert.Equal(t, "LIVE", panel.messageEntry.Text)
	assert.Equal(t, "/stream/countdown.txt", panel.pathLabel.Text)
	assert.Equal(t, "Stopped", panel.stateLabel.Text)
	assert.False(t, panel.startButton.Disabled())
}

func TestTypingInsertsColons(t *testing.T) {
	panel, _ := newTestPanel(t, nil)
	panel.timeEntry.SetText("")

	test.Type(panel.timeEntry, "010203")

	assert.Equal(t, "01:02:03", panel.timeEntry.Text)
	assert.Equal(t, 8, panel.timeEntry.CursorColumn)
	assert.Equal(t, 8, panel.lastTimeLen)
}

func TestSaveShowsValidationError(t *testing.T) {
	panel, controller := newTestPanel(t, nil)
	panel.formatEntry.SetText("")

	test.Tap(panel.saveButton)

	assert.True(t, controller.Errors().Format)
	assert.True(t, panel.formatError.Visible())
	assert.False(t, panel.timeError.Visible())
	assert.False(t, panel.savingLabel.Visible())
}

func TestSaveAndRunCountdown(t *testing.T) {
	panel, controller := newTestPanel(t, nil)
	require.True(t, panel.startButton.Disabled())

	panel.timeEntry.SetText("00:01:30")
	panel.messageEntry.SetText("GO")
	test.Tap(panel.saveButton)

	assert.Equal(t, 90, controller.Config().RemainingSeconds)
	assert.Equal(t, "00:01:30", panel.display.Text)
	assert.True(t, panel.savingLabel.Visible())
	assert.True(t, panel.saveButton.Disabled())
	assert.False(t, panel.startButton.Disabled())

	test.Tap(panel.startButton)
	assert.Equal(t, countdown.StateRunning, controller.State())
	assert.Equal(t, "Running", panel.stateLabel.Text)
	assert.Equal(t, "Pause", panel.pauseButton.Text)

	test.Tap(panel.pauseButton)
	assert.Equal(t, countdown.StatePaused, controller.State())
	assert.Equal(t, "Resume", panel.pauseButton.Text)

	test.Tap(panel.stopButton)
	assert.Equal(t, countdown.StateIdle, controller.State())
	assert.Equal(t, "00:00:00", panel.display.Text)
	assert.True(t, panel.startButton.Disabled())
}

func TestApplyCompletedCallsHandler(t *testing.T) {
	panel, _ := newTestPanel(t, nil)
	var got string
	panel.SetOnComplete(func(message string) {
		got = message
	})

	panel.Apply(countdown.Event{Type: countdown.EventCompleted, Message: "Done"})
	assert.Equal(t, "Done", got)

	got = ""
	panel.Apply(countdown.Event{Type: countdown.EventTick})
	assert.Empty(t, got)
}
