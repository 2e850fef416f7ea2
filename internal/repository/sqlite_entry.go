package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/google/uuid"
)

// SQLiteEntryRepo implements EntryRepo on a local SQLite table.
type SQLiteEntryRepo struct {
	db  db.DBTX
	now domain.Clock
}

// NewSQLiteEntryRepo creates a SQLiteEntryRepo. A nil clock uses time.Now.
func NewSQLiteEntryRepo(database db.DBTX, clock domain.Clock) *SQLiteEntryRepo {
	if clock == nil {
		clock = time.Now
	}
	return &SQLiteEntryRepo{db: database, now: clock}
}

func (r *SQLiteEntryRepo) Insert(ctx context.Context, e domain.ValidEntry) error {
	query := `INSERT INTO department_work_log (id, name, requested_dept, task, duration_min, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		e.Name,
		e.RequestedDept,
		e.Task,
		e.DurationMin,
		formatTimestamp(r.now()),
	)
	if err != nil {
		return storeErr(OpInsert, fmt.Errorf("inserting work log entry: %w", err))
	}
	return nil
}

func (r *SQLiteEntryRepo) FetchAll(ctx context.Context) ([]*domain.WorkLogEntry, error) {
	query := `SELECT name, requested_dept, task, duration_min, created_at
		FROM department_work_log
		ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr(OpFetchAll, fmt.Errorf("listing work log entries: %w", err))
	}
	defer rows.Close()

	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, storeErr(OpFetchAll, err)
	}
	return entries, nil
}

// scanEntries scans every row into entries, preserving query order.
func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.WorkLogEntry, error) {
	entries := []*domain.WorkLogEntry{}
	for rows.Next() {
		var e domain.WorkLogEntry
		var createdAtStr string

		if err := rows.Scan(&e.Name, &e.RequestedDept, &e.Task, &e.DurationMin, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning work log row: %w", err)
		}

		createdAt, err := parseTimestamp(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.CreatedAt = createdAt

		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work log rows: %w", err)
	}
	return entries, nil
}
