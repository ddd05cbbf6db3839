package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestSchedulerFixedStep verifies steps run per whole interval and remainders carry over
func TestSchedulerFixedStep(t *testing.T) {
	steps := 0
	s := NewScheduler(10*time.Millisecond, nil, func() { steps++ })

	if n := s.Tick(25 * time.Millisecond); n != 2 {
		t.Errorf("Expected 2 steps for 25ms, got %d", n)
	}
	if n := s.Tick(5 * time.Millisecond); n != 1 {
		t.Errorf("Expected carried remainder to complete a step, got %d", n)
	}
	if steps != 3 || s.TickCount() != 3 {
		t.Errorf("Expected 3 total steps, got %d (count %d)", steps, s.TickCount())
	}
}

// TestSchedulerCatchUpLimit verifies long stalls do not run unbounded steps
func TestSchedulerCatchUpLimit(t *testing.T) {
	steps := 0
	s := NewScheduler(10*time.Millisecond, nil, func() { steps++ })

	n := s.Tick(time.Second)
	if n != DefaultMaxCatchUp {
		t.Errorf("Expected %d steps after stall, got %d", DefaultMaxCatchUp, n)
	}
	if s.Dropped() == 0 {
		t.Error("Expected dropped steps to be recorded")
	}
	if n := s.Tick(5 * time.Millisecond); n != 0 {
		t.Errorf("Expected backlog discarded, got %d steps", n)
	}
}

// TestSchedulerNonPositiveDelta verifies zero or negative deltas are ignored
func TestSchedulerNonPositiveDelta(t *testing.T) {
	s := NewScheduler(10*time.Millisecond, nil, func() { t.Fatal("unexpected step") })
	s.Tick(0)
	s.Tick(-time.Second)
}

// TestSchedulerStartStop verifies the loop runs and stops cleanly
func TestSchedulerStartStop(t *testing.T) {
	var steps atomic.Int64
	var frames atomic.Int64

	s := NewScheduler(2*time.Millisecond, nil, func() { steps.Add(1) })
	s.SetFrameHook(func() { frames.Add(1) })
	s.Start()
	s.Start() // idempotent

	time.Sleep(50 * time.Millisecond)
	s.Stop()
	s.Stop() // idempotent

	if steps.Load() == 0 {
		t.Error("Expected steps to run while started")
	}
	if frames.Load() == 0 {
		t.Error("Expected frame hook to run")
	}

	after := steps.Load()
	time.Sleep(20 * time.Millisecond)
	if steps.Load() != after {
		t.Error("Expected no steps after Stop returned")
	}
}

// TestSchedulerPausedClock verifies no steps run while the clock is paused
func TestSchedulerPausedClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	clock := NewPausableClock(mock)

	var steps atomic.Int64
	s := NewScheduler(time.Millisecond, clock, func() { steps.Add(1) })
	clock.Pause()
	s.Start()
	for i := 0; i < 10; i++ {
		mock.Advance(10 * time.Millisecond)
		time.Sleep(2 * time.Millisecond)
	}
	s.Stop()

	if steps.Load() != 0 {
		t.Errorf("Expected no steps while paused, got %d", steps.Load())
	}
}
