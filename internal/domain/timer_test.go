package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// stepClock is a manually advanced clock.
type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time            { return c.now }
func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTimer() (*Timer, *stepClock) {
	c := &stepClock{now: testNow}
	return NewTimer(c.Now), c
}

func TestTimer_NewIsIdle(t *testing.T) {
	tm, _ := newTestTimer()
	assert.Equal(t, TimerIdle, tm.State)
	assert.Nil(t, tm.StartedAt)
	assert.Zero(t, tm.AccumulatedMinutes)
	assert.Zero(t, tm.Minutes())
}

func TestTimer_StartRecordsStartTime(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	assert.Equal(t, TimerRunning, tm.State)
	require.NotNil(t, tm.StartedAt)
	assert.Equal(t, testNow, *tm.StartedAt)
}

func TestTimer_StartWhileRunningRejected(t *testing.T) {
	tm, c := newTestTimer()
	require.NoError(t, tm.Start())
	c.Advance(30 * time.Second)

	err := tm.Start()
	assert.ErrorIs(t, err, ErrTimerRunning)
	assert.Equal(t, testNow, *tm.StartedAt, "start time must not move")
}

func TestTimer_StopAfter125Seconds(t *testing.T) {
	tm, c := newTestTimer()
	require.NoError(t, tm.Start())
	c.Advance(125 * time.Second)
	require.NoError(t, tm.Stop())

	assert.Equal(t, TimerStopped, tm.State)
	assert.Nil(t, tm.StartedAt)
	assert.Equal(t, 2.08, tm.AccumulatedMinutes)
	assert.Equal(t, 2.08, tm.Minutes())
}

func TestTimer_ImmediateStopIsNonNegative(t *testing.T) {
	tm, _ := newTestTimer()
	require.NoError(t, tm.Start())
	require.NoError(t, tm.Stop())
	assert.GreaterOrEqual(t, tm.AccumulatedMinutes, 0.0)
}

func TestTimer_StopWithoutStartRejected(t *testing.T) {
	tm, _ := newTestTimer()
	err := tm.Stop()
	assert.ErrorIs(t, err, ErrTimerNotRunning)
	assert.Equal(t, TimerIdle, tm.State)
}

func TestTimer_StopTwiceRejected(t *testing.T) {
	tm, c := newTestTimer()
	require.NoError(t, tm.Start())
	c.Advance(time.Minute)
	require.NoError(t, tm.Stop())

	c.Advance(time.Minute)
	assert.ErrorIs(t, tm.Stop(), ErrTimerNotRunning)
	assert.Equal(t, 1.0, tm.AccumulatedMinutes, "second stop must not change the result")
}

func TestTimer_TickTracksClockWithoutChangingState(t *testing.T) {
	tm, c := newTestTimer()
	assert.Zero(t, tm.Tick(), "idle timer has no elapsed time")

	require.NoError(t, tm.Start())
	c.Advance(61 * time.Second)
	assert.Equal(t, 61*time.Second, tm.Tick())
	c.Advance(time.Second)
	assert.Equal(t, 62*time.Second, tm.Tick())
	assert.Equal(t, TimerRunning, tm.State)
}

func TestTimer_TickClampsBackwardsClock(t *testing.T) {
	tm, c := newTestTimer()
	require.NoError(t, tm.Start())
	c.Advance(-5 * time.Second)
	assert.Zero(t, tm.Tick())
	require.NoError(t, tm.Stop())
	assert.Zero(t, tm.AccumulatedMinutes)
}

func TestTimer_StopIsMonotonicInStopTime(t *testing.T) {
	prev := -1.0
	for secs := 0; secs <= 600; secs += 7 {
		tm, c := newTestTimer()
		require.NoError(t, tm.Start())
		c.Advance(time.Duration(secs) * time.Second)
		require.NoError(t, tm.Stop())
		assert.GreaterOrEqual(t, tm.AccumulatedMinutes, prev, "stop at %ds", secs)
		prev = tm.AccumulatedMinutes
	}
}

func TestTimer_ResetFromEveryState(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*Timer, *stepClock)
	}{
		{"idle", func(*Timer, *stepClock) {}},
		{"running", func(tm *Timer, c *stepClock) {
			_ = tm.Start()
			c.Advance(time.Minute)
		}},
		{"stopped", func(tm *Timer, c *stepClock) {
			_ = tm.Start()
			c.Advance(3 * time.Minute)
			_ = tm.Stop()
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm, c := newTestTimer()
			tc.setup(tm, c)
			tm.Reset()
			assert.Equal(t, TimerIdle, tm.State)
			assert.Zero(t, tm.AccumulatedMinutes)
			assert.Nil(t, tm.StartedAt)
		})
	}
}

func TestTimer_StartFromStoppedResetsResult(t *testing.T) {
	tm, c := newTestTimer()
	require.NoError(t, tm.Start())
	c.Advance(10 * time.Minute)
	require.NoError(t, tm.Stop())
	require.Equal(t, 10.0, tm.AccumulatedMinutes)

	require.NoError(t, tm.Start())
	assert.Equal(t, TimerRunning, tm.State)
	assert.Zero(t, tm.AccumulatedMinutes)
	assert.Zero(t, tm.Minutes(), "running timer has nothing to submit")
	assert.Equal(t, c.Now(), *tm.StartedAt)
}

func TestTimer_NilClockUsesWallTime(t *testing.T) {
	tm := NewTimer(nil)
	before := time.Now()
	require.NoError(t, tm.Start())
	assert.False(t, tm.StartedAt.Before(before))
}

func TestRoundMinutes(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want float64
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Second, 0.02},
		{30 * time.Second, 0.5},
		{125 * time.Second, 2.08},
		{time.Hour, 60},
		{90*time.Minute + 20*time.Second, 90.33},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundMinutes(tc.d), "d=%s", tc.d)
	}
}
