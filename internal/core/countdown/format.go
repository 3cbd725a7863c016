package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"streamcountdown/internal/core/model"

	"github.com/nleeper/goment"
)

// Validation failures returned by Save.
var (
	ErrInvalidTime    = errors.New("invalid time input")
	ErrInvalidFormat  = errors.New("invalid display format")
	ErrInvalidMessage = errors.New("completion message too long")
)

// FormatTime renders seconds as a UTC clock time using moment-style tokens.
// An empty format falls back to HH:mm:ss. Values of a day or more wrap.
func FormatTime(format string, seconds int) string {
	if format == "" {
		format = model.DefaultFormat
	}
	if seconds < 0 {
		seconds = 0
	}

	clock := time.Unix(int64(seconds), 0).UTC()
	moment, err := goment.New(clock)
	if err != nil {
		return clock.Format(time.TimeOnly)
	}
	return moment.UTC().Format(format)
}

// TypeTime appends a colon once the input reaches the hour or minute boundary.
func TypeTime(input string) string {
	switch utf8.RuneCountInString(input) {
	case 2, 5:
		return input + ":"
	default:
		return input
	}
}

// CheckIsValid reports whether the input is numeric once colons are removed.
func CheckIsValid(input string) bool {
	stripped := strings.ReplaceAll(input, ":", "")
	_, err := strconv.ParseUint(stripped, 10, 64)
	return err == nil
}

// ParseTimeInput converts "HH:MM:SS" (or "HH:MM") into seconds.
func ParseTimeInput(input string) (int, error) {
	parts := strings.Split(input, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("parse %q: %w", input, ErrInvalidTime)
	}

	multipliers := []int{3600, 60, 1}
	total := 0
	for i, part := range parts {
		value, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", input, ErrInvalidTime)
		}
		total += int(value) * multipliers[i]
	}
	return total, nil
}

// ParseStoredSeconds reads the leading decimal digits of a persisted value,
// so "12abc" and "3.7" yield 12 and 3. Anything else yields 0.
func ParseStoredSeconds(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	seconds, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return seconds
}

// Validate applies the save rules in order and stops at the first failure.
func Validate(draft model.Draft) (model.ValidationErrors, error) {
	var errs model.ValidationErrors

	if utf8.RuneCountInString(draft.TimeInput) != model.TimeInputLength {
		errs.Time = true
		return errs, fmt.Errorf("time input must be %d characters: %w", model.TimeInputLength, ErrInvalidTime)
	}
	if draft.Format == "" {
		errs.Format = true
		return errs, fmt.Errorf("format is required: %w", ErrInvalidFormat)
	}
	if draft.CompletionMessage != "" && utf8.RuneCountInString(draft.CompletionMessage) > model.MaxCompletionMessage {
		errs.Message = true
		return errs, fmt.Errorf("message exceeds %d characters: %w", model.MaxCompletionMessage, ErrInvalidMessage)
	}
	if utf8.RuneCountInString(draft.Format) > model.MaxFormatLength {
		errs.Format = true
		return errs, fmt.Errorf("format exceeds %d characters: %w", model.MaxFormatLength, ErrInvalidFormat)
	}
	if !CheckIsValid(draft.TimeInput) {
		errs.Time = true
		return errs, fmt.Errorf("time input %q is not numeric: %w", draft.TimeInput, ErrInvalidTime)
	}
	return errs, nil
}
