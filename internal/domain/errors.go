package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTimerRunning is returned by Timer.Start when a run is already in progress.
	ErrTimerRunning = errors.New("timer is already running")

	// ErrTimerNotRunning is returned by Timer.Stop when there is no run to stop.
	ErrTimerNotRunning = errors.New("timer is not running")

	// ErrMissingField matches a ValidationError for an empty text field.
	ErrMissingField = errors.New("missing field")

	// ErrNonPositiveDuration matches a ValidationError for a duration that is not a positive finite number.
	ErrNonPositiveDuration = errors.New("duration must be positive")

	// ErrSubmitWhileRunning matches a ValidationError raised while the timer is still running.
	ErrSubmitWhileRunning = errors.New("timer is still running")
)

type ValidationKind string

const (
	KindMissingField        ValidationKind = "missing_field"
	KindNonPositiveDuration ValidationKind = "non_positive_duration"
	KindTimerRunning        ValidationKind = "timer_running"
)

// ValidationError reports why form input could not become a ValidEntry.
// Field is set only for KindMissingField.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case KindNonPositiveDuration:
		return "duration is 0: use the timer or enter minutes manually"
	case KindTimerRunning:
		return "stop the timer before submitting"
	default:
		return "invalid entry"
	}
}

// Is lets errors.Is match a ValidationError against the kind sentinels.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case KindMissingField:
		return target == ErrMissingField
	case KindNonPositiveDuration:
		return target == ErrNonPositiveDuration
	case KindTimerRunning:
		return target == ErrSubmitWhileRunning
	}
	return false
}
