package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// MemoryEntryRepo is an in-memory record store for service and TUI tests.
// Setting InsertErr or FetchErr makes the corresponding call fail.
type MemoryEntryRepo struct {
	mu      sync.Mutex
	clock   func() time.Time
	entries []*domain.WorkLogEntry

	InsertErr   error
	FetchErr    error
	InsertCalls int
	FetchCalls  int
}

// NewMemoryEntryRepo returns an empty store stamping created_at from clock.
// A nil clock uses time.Now.
func NewMemoryEntryRepo(clock func() time.Time) *MemoryEntryRepo {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryEntryRepo{clock: clock}
}

func (r *MemoryEntryRepo) Insert(_ context.Context, e domain.ValidEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.InsertCalls++
	if r.InsertErr != nil {
		return r.InsertErr
	}
	r.entries = append(r.entries, &domain.WorkLogEntry{
		Name:          e.Name,
		RequestedDept: e.RequestedDept,
		Task:          e.Task,
		DurationMin:   e.DurationMin,
		CreatedAt:     r.clock(),
	})
	return nil
}

func (r *MemoryEntryRepo) FetchAll(_ context.Context) ([]*domain.WorkLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FetchCalls++
	if r.FetchErr != nil {
		return nil, r.FetchErr
	}
	out := make([]*domain.WorkLogEntry, len(r.entries))
	for i, e := range r.entries {
		cp := *e
		out[len(r.entries)-1-i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Len returns the number of stored entries.
func (r *MemoryEntryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Seed stores entries as if they had been inserted earlier.
func (r *MemoryEntryRepo) Seed(entries ...*domain.WorkLogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		cp := *e
		r.entries = append(r.entries, &cp)
	}
}
