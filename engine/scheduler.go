package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/portfolio-lab/summit/core"
)

// DefaultMaxCatchUp bounds steps run per wake so a stalled host cannot trigger a spiral of death
const DefaultMaxCatchUp = 5

// Scheduler runs a step function on a fixed timestep
// The host drives it either through Tick (frame callback) or Start (internal ticker)
// All steps and frame hooks run on one goroutine; there is no intra-frame yielding
type Scheduler struct {
	interval time.Duration
	clock    *PausableClock
	step     func()
	frame    func()

	maxCatchUp int
	acc        time.Duration
	last       time.Time

	tickCount atomic.Uint64
	dropped   atomic.Uint64

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler that calls step every interval of game time
func NewScheduler(interval time.Duration, clock *PausableClock, step func()) *Scheduler {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	return &Scheduler{
		interval:   interval,
		clock:      clock,
		step:       step,
		maxCatchUp: DefaultMaxCatchUp,
		stopChan:   make(chan struct{}),
	}
}

// SetFrameHook registers fn to run after each wake, including paused wakes, must be called before Start
func (s *Scheduler) SetFrameHook(fn func()) {
	s.frame = fn
}

// Clock returns the pausable clock driving the scheduler
func (s *Scheduler) Clock() *PausableClock {
	return s.clock
}

// Tick accumulates dt and runs as many whole steps as fit, returns steps executed
// Backlog beyond maxCatchUp steps is discarded and counted as dropped
func (s *Scheduler) Tick(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	s.acc += dt

	steps := 0
	for s.acc >= s.interval && steps < s.maxCatchUp {
		s.step()
		s.acc -= s.interval
		steps++
	}

	if s.acc >= s.interval {
		behind := uint64(s.acc / s.interval)
		s.dropped.Add(behind)
		s.acc %= s.interval
	}

	s.tickCount.Add(uint64(steps))
	return steps
}

// TickCount returns total steps executed
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// Dropped returns total steps discarded by catch-up limiting
func (s *Scheduler) Dropped() uint64 {
	return s.dropped.Load()
}

// Start launches the internal loop, no-op when already running
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the loop and waits for the in-flight wake to finish
// No step runs after Stop returns
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.CompareAndSwap(true, false) {
			s.wg.Wait()
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.last = s.clock.Now()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			now := s.clock.Now()
			dt := now.Sub(s.last)
			s.last = now

			s.Tick(dt)
			if s.frame != nil {
				s.frame()
			}
		}
	}
}
