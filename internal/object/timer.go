package object

import "time"

// TimerMode selects whether a Timer stops or wraps around when it finishes.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts elapsed simulation time towards a duration.
//
// A once timer stays finished until Reset. A repeating timer wraps and
// reports JustFinished on each tick that crossed the duration.
type Timer struct {
	duration      time.Duration
	elapsed       time.Duration
	mode          TimerMode
	paused        bool
	finished      bool
	timesFinished int // during the last Tick
}

// NewTimer creates a running timer.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{duration: d, mode: mode}
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt time.Duration) {
	if t.paused || (t.mode == TimerOnce && t.finished) {
		t.timesFinished = 0
		return
	}

	t.elapsed += dt
	t.timesFinished = 0
	t.finished = false
	if t.elapsed < t.duration {
		return
	}

	t.finished = true
	if t.mode == TimerOnce {
		t.timesFinished = 1
		t.elapsed = t.duration
		return
	}
	if t.duration <= 0 {
		t.timesFinished = 1
		t.elapsed = 0
		return
	}
	t.timesFinished = int(t.elapsed / t.duration)
	t.elapsed %= t.duration
}

// Finished reports whether the timer has reached its duration.
// For repeating timers this is only true on the tick that wrapped.
func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the last Tick made the timer finish.
func (t *Timer) JustFinished() bool {
	return t.timesFinished > 0
}

// TimesFinishedThisTick returns how many times a repeating timer wrapped during the last Tick.
func (t *Timer) TimesFinishedThisTick() int {
	return t.timesFinished
}

// Reset rewinds the timer to zero without changing its paused state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.timesFinished = 0
}

// Pause stops the timer from advancing.
func (t *Timer) Pause() {
	t.paused = true
}

// Unpause lets the timer advance again.
func (t *Timer) Unpause() {
	t.paused = false
}

// Paused reports whether the timer is paused.
func (t *Timer) Paused() bool {
	return t.paused
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Elapsed returns the time accumulated since the last reset or wrap.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// FractionRemaining returns the remaining share of the duration in [0, 1].
func (t *Timer) FractionRemaining() float64 {
	if t.duration <= 0 {
		return 0
	}
	return 1 - float64(t.elapsed)/float64(t.duration)
}
