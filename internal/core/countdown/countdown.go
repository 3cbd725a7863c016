package countdown

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"streamcountdown/internal/core/model"
)

// ErrNoPicker indicates Browse was called before a picker was attached.
var ErrNoPicker = errors.New("no path picker configured")

// SettingsStore persists string values by key.
type SettingsStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileSink overwrites the file at path with contents. An empty path is a no-op.
type FileSink interface {
	Write(path, contents string) error
}

// PathPicker asks the user for a directory. An empty result means cancelled.
type PathPicker interface {
	ChooseDirectory(ctx context.Context) (string, error)
}

// Config contains runtime options for Controller.
type Config struct {
	TickInterval      time.Duration
	SaveFeedbackDelay time.Duration
}

// Controller owns the countdown state and its tick loop.
type Controller struct {
	mu          sync.Mutex
	options     Config
	store       SettingsStore
	sink        FileSink
	picker      PathPicker
	config      model.TimerConfig
	display     string
	state       State
	errors      model.ValidationErrors
	saving      bool
	savingTimer *time.Timer
	stopCh      chan struct{}
	loopID      uint64
	events      []chan Event
	closed      bool
}

// New loads persisted settings and creates an idle controller.
func New(store SettingsStore, sink FileSink, options Config) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.SaveFeedbackDelay <= 0 {
		options.SaveFeedbackDelay = 1500 * time.Millisecond
	}

	controller := &Controller{
		options: options,
		store:   store,
		sink:    sink,
		state:   StateIdle,
	}
	controller.config = loadConfig(store)
	controller.display = FormatTime(controller.config.Format, controller.config.RemainingSeconds)
	return controller
}

func loadConfig(store SettingsStore) model.TimerConfig {
	config := model.TimerConfig{Format: model.DefaultFormat}
	if store == nil {
		return config
	}

	if format, ok := store.Get(model.KeyFormat); ok && format != "" {
		config.Format = format
	}
	if raw, ok := store.Get(model.KeySeconds); ok {
		config.RemainingSeconds = ParseStoredSeconds(raw)
	}
	if path, ok := store.Get(model.KeyPath); ok {
		config.TargetPath = path
	}
	if message, ok := store.Get(model.KeyCompletionMessage); ok {
		config.CompletionMessage = message
	}
	return config
}

// SetPicker injects the directory picker used by Browse.
func (controller *Controller) SetPicker(picker PathPicker) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.picker = picker
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	if controller.closed {
		close(ch)
	} else {
		controller.events = append(controller.events, ch)
	}
	controller.mu.Unlock()
	return ch
}

// Draft returns the editable values the UI should start from.
func (controller *Controller) Draft() model.Draft {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return model.Draft{
		TimeInput:         strings.ReplaceAll(controller.display, " ", ""),
		Format:            controller.config.Format,
		CompletionMessage: controller.config.CompletionMessage,
	}
}

// Config returns a copy of the committed configuration.
func (controller *Controller) Config() model.TimerConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}

// State returns the countdown state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Display returns the current display string.
func (controller *Controller) Display() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.display
}

// Errors returns the validation flags from the last save.
func (controller *Controller) Errors() model.ValidationErrors {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.errors
}

// Saving reports whether the save affordance is still showing.
func (controller *Controller) Saving() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.saving
}

// Save validates the draft and commits it. Invalid drafts leave all state untouched.
func (controller *Controller) Save(draft model.Draft) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.errors = model.ValidationErrors{}
	errs, err := Validate(draft)
	if err == nil {
		var seconds int
		seconds, err = ParseTimeInput(draft.TimeInput)
		if err != nil {
			errs.Time = true
		} else {
			controller.commitLocked(draft, seconds)
			return nil
		}
	}

	controller.errors = errs
	controller.emitLocked(controller.eventLocked(EventValidation))
	return err
}

func (controller *Controller) commitLocked(draft model.Draft, seconds int) {
	controller.saving = true
	controller.config.RemainingSeconds = seconds
	controller.config.Format = draft.Format
	controller.config.CompletionMessage = draft.CompletionMessage
	controller.display = FormatTime(controller.config.Format, seconds)
	controller.writeLocked(controller.display)

	controller.persistLocked(model.KeyFormat, controller.config.Format)
	controller.persistLocked(model.KeySeconds, strconv.Itoa(seconds))
	if controller.config.CompletionMessage != "" {
		controller.persistLocked(model.KeyCompletionMessage, controller.config.CompletionMessage)
	}

	if controller.savingTimer != nil {
		controller.savingTimer.Stop()
	}
	controller.savingTimer = time.AfterFunc(controller.options.SaveFeedbackDelay, controller.finishSaving)

	controller.emitLocked(controller.eventLocked(EventSaved))
}

func (controller *Controller) finishSaving() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if !controller.saving || controller.closed {
		return
	}
	controller.saving = false
	controller.savingTimer = nil
	controller.emitLocked(controller.eventLocked(EventSavingDone))
}

// Start begins the countdown, replacing any running tick loop.
func (controller *Controller) Start() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.startLocked()
}

func (controller *Controller) startLocked() {
	controller.cancelLoopLocked()
	if controller.closed {
		return
	}
	if controller.config.RemainingSeconds <= 0 {
		controller.setStateLocked(StateIdle)
		return
	}

	controller.loopID++
	controller.stopCh = make(chan struct{})
	go controller.run(controller.loopID, controller.stopCh)
	controller.setStateLocked(StateRunning)
}

// Pause freezes a running countdown without touching the remaining time.
func (controller *Controller) Pause() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.pauseLocked()
}

func (controller *Controller) pauseLocked() {
	if controller.stopCh == nil {
		return
	}
	controller.cancelLoopLocked()
	controller.setStateLocked(StatePaused)
}

// Stop cancels the countdown and resets the remaining time to zero.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.stopLocked()
}

func (controller *Controller) stopLocked() {
	controller.cancelLoopLocked()
	controller.config.RemainingSeconds = 0
	controller.persistLocked(model.KeySeconds, "0")
	controller.display = FormatTime(controller.config.Format, 0)
	controller.writeLocked(controller.display)
	controller.setStateLocked(StateIdle)
	controller.emitLocked(controller.eventLocked(EventTick))
}

// TogglePause pauses a running countdown, otherwise starts or resumes it.
func (controller *Controller) TogglePause() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.state == StateRunning {
		controller.pauseLocked()
		return
	}
	if controller.config.RemainingSeconds == 0 {
		return
	}
	controller.startLocked()
}

// Browse asks the picker for a directory and targets countdown.txt inside it.
// It blocks until the dialog closes and returns the new target, or "" when cancelled.
func (controller *Controller) Browse(ctx context.Context) (string, error) {
	controller.mu.Lock()
	picker := controller.picker
	controller.mu.Unlock()
	if picker == nil {
		return "", ErrNoPicker
	}

	dir, err := picker.ChooseDirectory(ctx)
	if err != nil {
		return "", fmt.Errorf("choose directory: %w", err)
	}
	if dir == "" {
		return "", nil
	}

	target := filepath.Join(dir, model.TargetFileName)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return "", nil
	}
	controller.config.TargetPath = target
	controller.persistLocked(model.KeyPath, target)
	controller.emitLocked(controller.eventLocked(EventPathChanged))
	return target, nil
}

// Close stops the tick loop and closes observers.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	controller.cancelLoopLocked()
	if controller.savingTimer != nil {
		controller.savingTimer.Stop()
		controller.savingTimer = nil
	}
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) run(id uint64, stopCh <-chan struct{}) {
	ticker := time.NewTicker(controller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			controller.tick(id, tickTime)
		}
	}
}

func (controller *Controller) tick(id uint64, tickTime time.Time) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if id != controller.loopID || controller.stopCh == nil {
		return
	}

	controller.display = FormatTime(controller.config.Format, controller.config.RemainingSeconds)
	if controller.config.RemainingSeconds > 0 {
		controller.config.RemainingSeconds--
		controller.persistLocked(model.KeySeconds, strconv.Itoa(controller.config.RemainingSeconds))
		controller.writeLocked(controller.display)
		event := controller.eventLocked(EventTick)
		event.At = tickTime
		controller.emitLocked(event)
		return
	}

	controller.stopLocked()
	message := controller.config.CompletionMessage
	if message != "" {
		controller.display = message
		controller.writeLocked(message)
	}
	event := controller.eventLocked(EventCompleted)
	event.Message = message
	event.At = tickTime
	controller.emitLocked(event)
}

func (controller *Controller) cancelLoopLocked() {
	if controller.stopCh == nil {
		return
	}
	close(controller.stopCh)
	controller.stopCh = nil
}

func (controller *Controller) setStateLocked(state State) {
	if controller.state == state {
		return
	}
	controller.state = state
	controller.emitLocked(controller.eventLocked(EventStateChange))
}

func (controller *Controller) persistLocked(key, value string) {
	if controller.store == nil {
		return
	}
	if err := controller.store.Set(key, value); err != nil {
		log.Printf("persist %s: %v", key, err)
		event := controller.eventLocked(EventPersistError)
		event.Message = err.Error()
		controller.emitLocked(event)
	}
}

func (controller *Controller) writeLocked(contents string) {
	if controller.sink == nil {
		return
	}
	if err := controller.sink.Write(controller.config.TargetPath, contents); err != nil {
		log.Printf("write countdown file: %v", err)
		event := controller.eventLocked(EventPersistError)
		event.Message = err.Error()
		controller.emitLocked(event)
	}
}

func (controller *Controller) eventLocked(eventType EventType) Event {
	return Event{
		Type:       eventType,
		State:      controller.state,
		Display:    controller.display,
		Remaining:  controller.config.RemainingSeconds,
		Errors:     controller.errors,
		Saving:     controller.saving,
		TargetPath: controller.config.TargetPath,
		At:         time.Now(),
	}
}

func (controller *Controller) emitLocked(event Event) {
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
