package climb

import (
	"sync"

	"github.com/portfolio-lab/summit/status"
	"github.com/portfolio-lab/summit/vmath"
)

// Game serializes access to a World for a host with separate input, tick and render goroutines
// Actions are queued and applied at the start of the next Step, so mutation stays on the tick goroutine
type Game struct {
	mu      sync.Mutex
	world   *World
	pending []Action
}

// NewGame wraps a freshly created world
func NewGame(cfg Config, rng vmath.Rand, store HighScoreStore, reg *status.Registry) *Game {
	return &Game{world: NewWorld(cfg, rng, store, reg)}
}

// Enqueue schedules an action for the next frame boundary
func (g *Game) Enqueue(a Action) {
	g.mu.Lock()
	g.pending = append(g.pending, a)
	g.mu.Unlock()
}

// Step applies queued actions then advances one tick
func (g *Game) Step() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, a := range g.pending {
		g.world.HandleAction(a)
	}
	g.pending = g.pending[:0]
	g.world.Tick()
}

// Apply runs queued actions without ticking, used while the scheduler is paused
func (g *Game) Apply() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, a := range g.pending {
		g.world.HandleAction(a)
	}
	g.pending = g.pending[:0]
}

// Snapshot returns a deep copy for rendering
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Snapshot()
}

// DrainEvents returns events emitted since the last drain
func (g *Game) DrainEvents() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.DrainEvents()
}

// Status returns the current game-state machine position
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.State.Status
}

// Summary describes the current or last session
func (g *Game) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Summary()
}
