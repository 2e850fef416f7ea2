// Package export renders work log entries into an xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the single sheet of every export.
	SheetName = "WorkLog"

	// MIMEType is the content type of the rendered workbook.
	MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	filenamePrefix = "department_work_log_"
	filenameLayout = "20060102_150405"
)

// ErrNoEntries is returned by Render for an empty slice. Callers are
// expected to tell the user instead of producing an empty file.
var ErrNoEntries = errors.New("no entries to export")

// Filename returns department_work_log_<YYYYMMDD>_<HHMMSS>.xlsx for t.
func Filename(t time.Time) string {
	return filenamePrefix + t.Format(filenameLayout) + ".xlsx"
}

// Render writes entries, in the given order, to a workbook with one sheet.
// Row 1 holds the column names; each following row is one entry.
func Render(entries []*domain.WorkLogEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(domain.EntryColumns))
	for i, col := range domain.EntryColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("locating row %d: %w", i+2, err)
		}
		row := []any{
			e.Name,
			e.RequestedDept,
			e.Task,
			e.DurationMin,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes data to dir/name atomically: a partially written file is
// never left under the final name. It returns the final path.
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing export: %w", err)
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		return "", fmt.Errorf("finalizing export: %w", err)
	}
	committed = true
	return final, nil
}
