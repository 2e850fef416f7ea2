package domain

import "time"

// WorkLogEntry is one row of the department work log as read back from a store.
type WorkLogEntry struct {
	Name          string
	RequestedDept string
	Task          string
	DurationMin   float64
	CreatedAt     time.Time
}

// ValidEntry holds user-supplied fields that passed Validate.
// Stores only accept this type, so unvalidated input never reaches them.
type ValidEntry struct {
	Name          string
	RequestedDept string
	Task          string
	DurationMin   float64
}

// FormInput is the raw state of the entry form at submit time.
type FormInput struct {
	Name          string
	RequestedDept string
	Task          string
	DurationMin   float64
	TimerState    TimerState
}
