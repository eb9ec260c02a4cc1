package object

import (
	"testing"
	"time"
)

func TestOnceTimerFinishesOnce(t *testing.T) {
	timer := NewTimer(100*time.Millisecond, TimerOnce)

	timer.Tick(60 * time.Millisecond)
	if timer.Finished() || timer.JustFinished() {
		t.Fatal("finished too early")
	}

	timer.Tick(60 * time.Millisecond)
	if !timer.Finished() || !timer.JustFinished() {
		t.Fatal("expected timer to just finish")
	}
	if timer.Elapsed() != 100*time.Millisecond {
		t.Errorf("Elapsed() = %v, want clamped to duration", timer.Elapsed())
	}

	timer.Tick(10 * time.Millisecond)
	if !timer.Finished() {
		t.Error("once timer should stay finished")
	}
	if timer.JustFinished() {
		t.Error("JustFinished should only hold for one tick")
	}
}

func TestTimerZeroTickChangesNothing(t *testing.T) {
	timer := NewTimer(time.Second, TimerOnce)
	timer.Tick(300 * time.Millisecond)
	timer.Tick(0)
	if timer.Elapsed() != 300*time.Millisecond || timer.Finished() {
		t.Errorf("zero tick changed timer: elapsed %v finished %v", timer.Elapsed(), timer.Finished())
	}
}

func TestRepeatingTimerWraps(t *testing.T) {
	timer := NewTimer(50*time.Millisecond, TimerRepeating)

	timer.Tick(120 * time.Millisecond)
	if got := timer.TimesFinishedThisTick(); got != 2 {
		t.Errorf("TimesFinishedThisTick() = %d, want 2", got)
	}
	if timer.Elapsed() != 20*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 20ms", timer.Elapsed())
	}

	timer.Tick(10 * time.Millisecond)
	if timer.JustFinished() || timer.Finished() {
		t.Error("repeating timer should not report finished between wraps")
	}
}

func TestPausedTimerDoesNotAdvance(t *testing.T) {
	timer := NewTimer(100*time.Millisecond, TimerOnce)
	timer.Pause()
	timer.Tick(time.Second)
	if timer.Finished() || timer.Elapsed() != 0 {
		t.Fatal("paused timer advanced")
	}

	timer.Unpause()
	timer.Tick(100 * time.Millisecond)
	if !timer.JustFinished() {
		t.Error("unpaused timer did not finish")
	}
}

func TestTimerReset(t *testing.T) {
	timer := NewTimer(100*time.Millisecond, TimerOnce)
	timer.Tick(200 * time.Millisecond)
	timer.Reset()
	if timer.Finished() || timer.JustFinished() || timer.Elapsed() != 0 {
		t.Error("Reset did not rewind the timer")
	}
	if got := timer.FractionRemaining(); got != 1 {
		t.Errorf("FractionRemaining() = %v, want 1", got)
	}
}
