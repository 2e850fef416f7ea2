package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/export"
	"github.com/alexanderramin/worklog/internal/repository"
)

// Renderer turns fetched entries into workbook bytes.
type Renderer func(entries []*domain.WorkLogEntry) ([]byte, error)

type workLogService struct {
	entries  repository.EntryRepo
	render   Renderer
	observer UseCaseObserver
}

func NewWorkLogService(entries repository.EntryRepo, observers ...UseCaseObserver) WorkLogService {
	return newWorkLogService(entries, export.Render, observers...)
}

func newWorkLogService(entries repository.EntryRepo, render Renderer, observers ...UseCaseObserver) *workLogService {
	return &workLogService{
		entries:  entries,
		render:   render,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workLogService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	// An empty store is a normal outcome, not a failed export.
	if errors.Is(err, ErrNothingToExport) {
		err = nil
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *workLogService) Submit(ctx context.Context, in domain.FormInput) (entry domain.ValidEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"requested_dept": in.RequestedDept}
	defer func() { s.observe(ctx, "submit-entry", startedAt, fields, err) }()

	entry, err = domain.Validate(in)
	if err != nil {
		return domain.ValidEntry{}, err
	}
	fields["duration_min"] = entry.DurationMin

	if err = s.entries.Insert(ctx, entry); err != nil {
		return domain.ValidEntry{}, fmt.Errorf("saving entry: %w", err)
	}
	return entry, nil
}

func (s *workLogService) Export(ctx context.Context, now time.Time) (file *ExportFile, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "export-entries", startedAt, fields, err) }()

	var entries []*domain.WorkLogEntry
	entries, err = s.entries.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching entries: %w", err)
	}
	fields["rows"] = len(entries)
	if len(entries) == 0 {
		err = ErrNothingToExport
		return nil, err
	}

	var data []byte
	data, err = s.render(entries)
	if err != nil {
		return nil, fmt.Errorf("rendering export: %w", err)
	}

	return &ExportFile{
		Filename: export.Filename(now),
		MIMEType: export.MIMEType,
		Data:     data,
		Rows:     len(entries),
	}, nil
}

func (s *workLogService) Recent(ctx context.Context, limit int) ([]*domain.WorkLogEntry, error) {
	entries, err := s.entries.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching entries: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
