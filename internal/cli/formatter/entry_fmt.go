package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// FormatEntryTable renders stored entries as a table, in the given order.
func FormatEntryTable(entries []*domain.WorkLogEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No entries recorded.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Truncate(e.Name, 24),
			Truncate(e.RequestedDept, 20),
			Truncate(e.Task, 40),
			FormatMinutes(e.DurationMin),
			Dim(HumanTimestamp(e.CreatedAt, now)),
		})
	}
	return RenderTable([]string{"NAME", "DEPT", "TASK", "DURATION", "LOGGED"}, rows)
}

// FormatSaved renders the confirmation shown after an entry is stored.
func FormatSaved(e domain.ValidEntry) string {
	return fmt.Sprintf("%s Saved %s for %s %s",
		StyleGreen.Render("✔"),
		Bold(FormatMinutes(e.DurationMin)),
		e.Name,
		Dim("("+e.RequestedDept+" · "+e.Task+")"))
}

// FormatExported renders the confirmation shown after an export is written.
func FormatExported(path string, rows int) string {
	noun := "entries"
	if rows == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("%s Exported %d %s to %s",
		StyleGreen.Render("✔"), rows, noun, Bold(path))
}

// FormatWarning renders a recoverable problem, such as a validation failure.
func FormatWarning(msg string) string {
	return StyleYellow.Render("⚠ " + msg)
}

// FormatError renders a failed store or export call with its raw message.
func FormatError(err error) string {
	return StyleRed.Render("✖ " + err.Error())
}
