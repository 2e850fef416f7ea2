package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS department_work_log (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL CHECK(length(trim(name)) > 0),
		requested_dept TEXT NOT NULL CHECK(length(trim(requested_dept)) > 0),
		task           TEXT NOT NULL CHECK(length(trim(task)) > 0),
		duration_min   REAL NOT NULL CHECK(duration_min > 0),
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_log_created ON department_work_log(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_work_log_dept ON department_work_log(requested_dept)`,
}
