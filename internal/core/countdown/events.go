package countdown

import (
	"time"

	"streamcountdown/internal/core/model"
)

// State represents the current countdown mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventTick         EventType = "tick"
	EventSaved        EventType = "saved"
	EventSavingDone   EventType = "saving_done"
	EventValidation   EventType = "validation"
	EventPathChanged  EventType = "path_changed"
	EventCompleted    EventType = "completed"
	EventPersistError EventType = "persist_error"
)

// Event represents a controller update for observers.
type Event struct {
	Type       EventType
	State      State
	Display    string
	Remaining  int
	Errors     model.ValidationErrors
	Saving     bool
	TargetPath string
	Message    string
	At         time.Time
}
