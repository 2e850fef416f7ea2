package cli

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeInfo
	noticeSuccess
	noticeWarning
	noticeError
)

type notice struct {
	kind noticeKind
	text string
}

// Session holds everything one interactive session owns: the timer, the
// entry fields, the duration mode and the last notice. Views share it by
// pointer and only touch it from Update.
type Session struct {
	ID    string
	Timer *domain.Timer

	Name          string
	RequestedDept string
	Task          string

	Mode          domain.DurationMode
	ManualMinutes int

	Notice notice

	// Busy is set while a submit or export call is in flight.
	Busy bool

	// tickGen identifies the current refresh chain. Bumped on every
	// start and stop so ticks from an earlier run die out.
	tickGen int

	// Terminal dimensions
	Width  int
	Height int
}

func newSession(id string, clock domain.Clock) *Session {
	return &Session{
		ID:            id,
		Timer:         domain.NewTimer(clock),
		Mode:          domain.DurationTimer,
		ManualMinutes: domain.DefaultManualMinutes,
	}
}

// Input snapshots the session into a form submission.
func (s *Session) Input() domain.FormInput {
	in := domain.FormInput{
		Name:          s.Name,
		RequestedDept: s.RequestedDept,
		Task:          s.Task,
		TimerState:    s.Timer.State,
	}
	if s.Mode == domain.DurationManual {
		in.DurationMin = float64(s.ManualMinutes)
	} else {
		in.DurationMin = s.Timer.Minutes()
	}
	return in
}

// Elapsed is the live reading of a running timer.
func (s *Session) Elapsed() time.Duration {
	return s.Timer.Tick()
}

// AdjustManual changes the manual duration by delta, never below the minimum.
func (s *Session) AdjustManual(delta int) {
	s.ManualMinutes = max(s.ManualMinutes+delta, domain.MinManualMinutes)
}

// ContentHeight is the height left for the active view below the header
// and above the status bar.
func (s *Session) ContentHeight() int {
	const chrome = 5
	return max(s.Height-chrome, 3)
}

func (s *Session) setNotice(kind noticeKind, text string) {
	s.Notice = notice{kind: kind, text: text}
}

func (s *Session) clearNotice() {
	s.Notice = notice{}
}
