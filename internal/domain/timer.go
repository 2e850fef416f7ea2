package domain

import (
	"math"
	"time"
)

// Clock returns the current time. Tests substitute a controllable clock.
type Clock func() time.Time

// Timer is a stopwatch for a single in-progress task.
//
// Only StartedAt and AccumulatedMinutes carry meaning between render cycles;
// elapsed time is always recomputed from StartedAt so the display never drifts.
type Timer struct {
	State              TimerState
	StartedAt          *time.Time
	AccumulatedMinutes float64

	now Clock
}

// NewTimer returns an idle timer. A nil clock uses time.Now.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = time.Now
	}
	return &Timer{State: TimerIdle, now: clock}
}

// Start begins a run. Starting from Stopped discards the previous result first.
func (t *Timer) Start() error {
	if t.State == TimerRunning {
		return ErrTimerRunning
	}
	if t.State == TimerStopped {
		t.Reset()
	}
	now := t.clock()()
	t.StartedAt = &now
	t.AccumulatedMinutes = 0
	t.State = TimerRunning
	return nil
}

// Tick returns the elapsed time of the current run for display. It is zero
// outside Running and never changes state.
func (t *Timer) Tick() time.Duration {
	if t.State != TimerRunning || t.StartedAt == nil {
		return 0
	}
	elapsed := t.clock()().Sub(*t.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Stop ends the run and records its length in minutes rounded to two decimals.
func (t *Timer) Stop() error {
	if t.State != TimerRunning {
		return ErrTimerNotRunning
	}
	t.AccumulatedMinutes = RoundMinutes(t.Tick())
	t.StartedAt = nil
	t.State = TimerStopped
	return nil
}

// Reset clears any run or result and returns to Idle.
func (t *Timer) Reset() {
	t.State = TimerIdle
	t.StartedAt = nil
	t.AccumulatedMinutes = 0
}

// Minutes is the duration a submit would record: the stopped result, else 0.
func (t *Timer) Minutes() float64 {
	if t.State != TimerStopped {
		return 0
	}
	return t.AccumulatedMinutes
}

func (t *Timer) clock() Clock {
	if t.now == nil {
		return time.Now
	}
	return t.now
}

// RoundMinutes converts d to minutes rounded half away from zero to two decimals.
func RoundMinutes(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return math.Round(d.Minutes()*100) / 100
}
