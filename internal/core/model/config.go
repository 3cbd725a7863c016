package model

// Settings keys shared by every SettingsStore implementation.
const (
	KeyFormat            = "format"
	KeySeconds           = "seconds"
	KeyPath              = "path"
	KeyCompletionMessage = "completionMessage"
)

// Field limits enforced on save.
const (
	TimeInputLength      = 8
	MaxFormatLength      = 10
	MaxCompletionMessage = 13
)

// DefaultFormat is used when no format was persisted.
const DefaultFormat = "HH:mm:ss"

// TargetFileName is appended to the directory chosen by the user.
const TargetFileName = "countdown.txt"

// TimerConfig is the persisted countdown state.
type TimerConfig struct {
	Format            string
	RemainingSeconds  int
	TargetPath        string
	CompletionMessage string
}

// Draft holds user edits that only take effect through a validated save.
type Draft struct {
	TimeInput         string
	Format            string
	CompletionMessage string
}

// ValidationErrors flags the field that failed the last save.
type ValidationErrors struct {
	Time    bool
	Format  bool
	Message bool
}

// Any reports whether a flag is set.
func (errs ValidationErrors) Any() bool {
	return errs.Time || errs.Format || errs.Message
}
