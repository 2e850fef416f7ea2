package domain

type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerStopped TimerState = "stopped"
)

// DurationMode selects where the submitted duration comes from.
type DurationMode string

const (
	DurationTimer  DurationMode = "timer"
	DurationManual DurationMode = "manual"
)

// Column names of the department_work_log table, in export order.
const (
	ColumnName          = "name"
	ColumnRequestedDept = "requested_dept"
	ColumnTask          = "task"
	ColumnDurationMin   = "duration_min"
	ColumnCreatedAt     = "created_at"
)

// EntryColumns lists the table columns in the order they are exported.
var EntryColumns = []string{
	ColumnName, ColumnRequestedDept, ColumnTask, ColumnDurationMin, ColumnCreatedAt,
}

const (
	// DefaultManualMinutes pre-fills the manual duration input.
	DefaultManualMinutes = 30
	// MinManualMinutes is the smallest accepted manual duration.
	MinManualMinutes = 1
)
