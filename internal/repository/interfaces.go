package repository

import (
	"context"

	"github.com/alexanderramin/worklog/internal/domain"
)

// TableName is the remote and local table holding work log rows.
const TableName = "department_work_log"

// EntryRepo is the record store. Entries are append-only: there is no
// update or delete.
type EntryRepo interface {
	// Insert appends one row. The store assigns created_at.
	Insert(ctx context.Context, e domain.ValidEntry) error

	// FetchAll returns every row, most recently created first.
	FetchAll(ctx context.Context) ([]*domain.WorkLogEntry, error)
}
