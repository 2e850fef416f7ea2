package repository

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// StoreCallEvent records metadata about a single store call.
type StoreCallEvent struct {
	Op        string
	Backend   string
	Rows      int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// StoreObserver receives events about store calls for logging.
type StoreObserver interface {
	OnStoreCall(ctx context.Context, event StoreCallEvent)
}

// NoopStoreObserver discards all events.
type NoopStoreObserver struct{}

func (NoopStoreObserver) OnStoreCall(context.Context, StoreCallEvent) {}

type logStoreObserver struct {
	logger *slog.Logger
}

// NewLogStoreObserver writes store_call events to w.
func NewLogStoreObserver(w io.Writer) StoreObserver {
	if w == nil {
		return NoopStoreObserver{}
	}
	return &logStoreObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logStoreObserver) OnStoreCall(ctx context.Context, e StoreCallEvent) {
	attrs := []any{
		"op", e.Op,
		"backend", e.Backend,
		"rows", e.Rows,
		"latency_ms", e.LatencyMs,
		"success", e.Success,
	}
	if !e.Success {
		attrs = append(attrs, "error_code", e.ErrorCode)
		o.logger.WarnContext(ctx, "store_call", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "store_call", attrs...)
}

// ObservedEntryRepo decorates an EntryRepo, reporting every call to an observer.
type ObservedEntryRepo struct {
	next     EntryRepo
	backend  string
	observer StoreObserver
}

// NewObservedEntryRepo wraps next. backend names the store in events.
func NewObservedEntryRepo(next EntryRepo, backend string, observer StoreObserver) *ObservedEntryRepo {
	if observer == nil {
		observer = NoopStoreObserver{}
	}
	return &ObservedEntryRepo{next: next, backend: backend, observer: observer}
}

func (r *ObservedEntryRepo) Insert(ctx context.Context, e domain.ValidEntry) error {
	start := time.Now()
	err := r.next.Insert(ctx, e)
	rows := 0
	if err == nil {
		rows = 1
	}
	r.report(ctx, OpInsert, start, rows, err)
	return err
}

func (r *ObservedEntryRepo) FetchAll(ctx context.Context) ([]*domain.WorkLogEntry, error) {
	start := time.Now()
	entries, err := r.next.FetchAll(ctx)
	r.report(ctx, OpFetchAll, start, len(entries), err)
	return entries, err
}

func (r *ObservedEntryRepo) report(ctx context.Context, op string, start time.Time, rows int, err error) {
	r.observer.OnStoreCall(ctx, StoreCallEvent{
		Op:        op,
		Backend:   r.backend,
		Rows:      rows,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: ErrorCode(err),
	})
}
