package service

import (
	"context"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// ExportFile is a rendered workbook ready to be written or downloaded.
type ExportFile struct {
	Filename string
	MIMEType string
	Data     []byte
	Rows     int
}

type WorkLogService interface {
	// Submit validates in and inserts it. Nothing is inserted when
	// validation fails.
	Submit(ctx context.Context, in domain.FormInput) (domain.ValidEntry, error)
	// Export fetches every entry and renders them, newest first. It returns
	// ErrNothingToExport when the store is empty.
	Export(ctx context.Context, now time.Time) (*ExportFile, error)
	// Recent returns at most limit entries, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]*domain.WorkLogEntry, error)
}
