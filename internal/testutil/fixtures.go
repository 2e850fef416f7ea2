package testutil

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

type EntryOption func(*domain.ValidEntry)

func WithName(name string) EntryOption {
	return func(e *domain.ValidEntry) { e.Name = name }
}

func WithDept(dept string) EntryOption {
	return func(e *domain.ValidEntry) { e.RequestedDept = dept }
}

func WithTask(task string) EntryOption {
	return func(e *domain.ValidEntry) { e.Task = task }
}

func WithMinutes(min float64) EntryOption {
	return func(e *domain.ValidEntry) { e.DurationMin = min }
}

// NewValidEntry returns the Kim/Sales/Report/45 entry with options applied.
func NewValidEntry(opts ...EntryOption) domain.ValidEntry {
	e := domain.ValidEntry{
		Name:          "Kim",
		RequestedDept: "Sales",
		Task:          "Report",
		DurationMin:   45,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewStoredEntry returns a stored entry built from NewValidEntry, created at createdAt.
func NewStoredEntry(createdAt time.Time, opts ...EntryOption) *domain.WorkLogEntry {
	v := NewValidEntry(opts...)
	return &domain.WorkLogEntry{
		Name:          v.Name,
		RequestedDept: v.RequestedDept,
		Task:          v.Task,
		DurationMin:   v.DurationMin,
		CreatedAt:     createdAt,
	}
}

// StoredEntries returns n entries created one minute apart, newest first,
// the order a store's FetchAll returns them in.
func StoredEntries(n int) []*domain.WorkLogEntry {
	entries := make([]*domain.WorkLogEntry, 0, n)
	for i := n - 1; i >= 0; i-- {
		created := DefaultNow.Add(time.Duration(i) * time.Minute)
		entries = append(entries, NewStoredEntry(created, WithMinutes(float64(10+i))))
	}
	return entries
}
