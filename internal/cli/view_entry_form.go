package cli

import (
	"strconv"

	"github.com/alexanderramin/worklog/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// entryFields holds form-bound copies of the session fields, committed
// only when the form completes.
type entryFields struct {
	name    string
	dept    string
	task    string
	minutes string
}

// newEntryFormView creates a wizard for the entry details. In manual mode
// it also asks for the duration.
func newEntryFormView(s *Session) View {
	f := &entryFields{
		name:    s.Name,
		dept:    s.RequestedDept,
		task:    s.Task,
		minutes: strconv.Itoa(s.ManualMinutes),
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("Your name").
			Value(&f.name).
			Validate(validateRequired(domain.ColumnName)),
		huh.NewInput().
			Title("Requested by (department)").
			Placeholder("Department that asked for the work").
			Value(&f.dept).
			Validate(validateRequired(domain.ColumnRequestedDept)),
		huh.NewText().
			Title("Task").
			Placeholder("What did you do?").
			Value(&f.task).
			Validate(validateRequired(domain.ColumnTask)),
	}
	if s.Mode == domain.DurationManual {
		fields = append(fields, huh.NewInput().
			Title("Duration (minutes)").
			Value(&f.minutes).
			Validate(validateManualMinutes))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(worklogHuhTheme()).
		WithShowHelp(false)

	done := func() tea.Cmd {
		applyEntryFields(s, f)
		return nil
	}

	return newWizardView("Entry details", form, done)
}

// applyEntryFields copies completed form values into the session.
func applyEntryFields(s *Session, f *entryFields) {
	s.Name = f.name
	s.RequestedDept = f.dept
	s.Task = f.task
	if s.Mode == domain.DurationManual {
		s.ManualMinutes = parseManualMinutes(f.minutes, s.ManualMinutes)
	}
	s.clearNotice()
}
