package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 min"},
		{-3, "0 min"},
		{45, "45 min"},
		{2.08, "2.08 min"},
		{0.5, "0.5 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0m 00s"},
		{"negative clamps", -time.Second, "0m 00s"},
		{"seconds", 9 * time.Second, "0m 09s"},
		{"minutes", 125 * time.Second, "2m 05s"},
		{"sub-second truncates", 125*time.Second + 900*time.Millisecond, "2m 05s"},
		{"hours", time.Hour + 2*time.Minute + 5*time.Second, "1h 02m 05s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.in))
		})
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))

	old := now.Add(-72 * time.Hour)
	assert.Equal(t, old.Local().Format("Jan 2 15:04"), HumanTimestamp(old, now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 3))
}

func TestTimerIndicator(t *testing.T) {
	assert.Contains(t, TimerIndicator(domain.TimerIdle), "IDLE")
	assert.Contains(t, TimerIndicator(domain.TimerRunning), "RUNNING")
	assert.Contains(t, TimerIndicator(domain.TimerStopped), "STOPPED")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long value", "x"}, {"s", "y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatEntryTable(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	entries := []*domain.WorkLogEntry{
		{Name: "Kim", RequestedDept: "Sales", Task: "Report", DurationMin: 45, CreatedAt: now.Add(-2 * time.Minute)},
		{Name: "Lee", RequestedDept: "Ops", Task: "Audit", DurationMin: 2.08, CreatedAt: now.Add(-3 * time.Hour)},
	}

	out := FormatEntryTable(entries, now)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Kim")
	assert.Contains(t, out, "45 min")
	assert.Contains(t, out, "2.08 min")
	assert.Contains(t, out, "3h ago")
	assert.Less(t, strings.Index(out, "Kim"), strings.Index(out, "Lee"), "order is preserved")

	assert.Contains(t, FormatEntryTable(nil, now), "No entries recorded.")
}

func TestFormatNotices(t *testing.T) {
	saved := FormatSaved(domain.ValidEntry{Name: "Kim", RequestedDept: "Sales", Task: "Report", DurationMin: 45})
	assert.Contains(t, saved, "Saved")
	assert.Contains(t, saved, "45 min")
	assert.Contains(t, saved, "Kim")

	assert.Contains(t, FormatExported("/tmp/x.xlsx", 1), "1 entry to /tmp/x.xlsx")
	assert.Contains(t, FormatExported("/tmp/x.xlsx", 3), "3 entries")
	assert.Contains(t, FormatWarning("name is required"), "name is required")
	assert.Contains(t, FormatError(errors.New("status 401: Invalid API key")), "Invalid API key")
}
