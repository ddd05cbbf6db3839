package climb

import (
	"log"
	"sync/atomic"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/status"
	"github.com/portfolio-lab/summit/vmath"
)

// Config sizes the world; zero fields take the canvas defaults
type Config struct {
	Width  float64
	Height float64
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = parameter.CanvasWidth
	}
	if c.Height <= 0 {
		c.Height = parameter.CanvasHeight
	}
	return c
}

// World owns every simulation entity and is mutated only through Tick and the action methods
// Not safe for concurrent use, see Game for the locked facade
type World struct {
	cfg   Config
	rng   vmath.Rand
	store HighScoreStore

	Holds     []Hold
	Obstacles []Obstacle
	Particles []Particle
	Climber   Climber
	Wind      WindGust
	State     GameState

	CameraY float64
	Shake   float64

	startY float64
	nextID int
	events []Event

	statTicks     *atomic.Int64
	statHolds     *atomic.Int64
	statParticles *atomic.Int64
	statAltitude  *status.AtomicFloat
	statCamera    *status.AtomicFloat
	statStatus    *status.AtomicString
}

// NewWorld creates a world in menu state with a generated wall
// store may be nil; reg may be nil
func NewWorld(cfg Config, rng vmath.Rand, store HighScoreStore, reg *status.Registry) *World {
	if reg == nil {
		reg = status.NewRegistry()
	}
	w := &World{
		cfg:           cfg.withDefaults(),
		rng:           rng,
		store:         store,
		statTicks:     reg.Ints.Get("climb.ticks"),
		statHolds:     reg.Ints.Get("climb.holds"),
		statParticles: reg.Ints.Get("climb.particles"),
		statAltitude:  reg.Floats.Get("climb.altitude"),
		statCamera:    reg.Floats.Get("climb.camera_y"),
		statStatus:    reg.Strings.Get("climb.status"),
	}

	if store != nil {
		best, err := store.HighScore()
		if err != nil {
			log.Printf("climb: high score unavailable, defaulting to 0: %v", err)
			best = 0
		}
		w.State.HighScore = best
	}

	w.reset()
	w.State.Status = StatusMenu
	w.publish()
	return w
}

// publish mirrors progress gauges into the metrics registry
func (w *World) publish() {
	w.statAltitude.Set(w.State.Altitude)
	w.statCamera.Set(w.CameraY)
	w.statStatus.Store(w.State.Status.String())
}

// Width returns the canvas width
func (w *World) Width() float64 { return w.cfg.Width }

// Height returns the canvas height
func (w *World) Height() float64 { return w.cfg.Height }

// StartY returns the climber's starting height, the altitude origin
func (w *World) StartY() float64 { return w.startY }

// reset clears every per-session field, keeping the high score
func (w *World) reset() {
	best := w.State.HighScore
	w.State = GameState{HighScore: best, Difficulty: 1}

	w.Holds = w.Holds[:0]
	w.Obstacles = w.Obstacles[:0]
	w.Particles = w.Particles[:0]
	w.Wind = WindGust{}
	w.CameraY = 0
	w.Shake = 0
	w.nextID = 0
	w.events = w.events[:0]

	w.startY = w.cfg.Height - parameter.HoldStartOffsetY - parameter.ClimberStandOffset
	w.Climber = Climber{Stamina: parameter.StaminaMax, State: StateClimbing}
	w.Climber.X = w.cfg.Width / 2
	w.Climber.Y = w.startY

	w.initHolds()
	if len(w.Holds) > 0 {
		w.Holds[0].Grabbed = true
		w.Climber.Anchor = w.Holds[0].ID
	}
	w.updateHands()
}

// StartGame begins a new session from a fresh wall
func (w *World) StartGame() {
	w.reset()
	w.State.Status = StatusPlaying
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

func (w *World) emit(ev Event) {
	w.events = append(w.events, ev)
}

// DrainEvents returns events emitted since the last call
func (w *World) DrainEvents() []Event {
	if len(w.events) == 0 {
		return nil
	}
	out := make([]Event, len(w.events))
	copy(out, w.events)
	w.events = w.events[:0]
	return out
}

// HoldByID returns the hold with id, nil if absent
func (w *World) HoldByID(id int) *Hold {
	if id == 0 {
		return nil
	}
	for i := range w.Holds {
		if w.Holds[i].ID == id {
			return &w.Holds[i]
		}
	}
	return nil
}

// GrabbedCount returns the number of holds flagged grabbed, at most one by construction
func (w *World) GrabbedCount() int {
	n := 0
	for i := range w.Holds {
		if w.Holds[i].Grabbed {
			n++
		}
	}
	return n
}

// Summary describes the current or last session
func (w *World) Summary() Summary {
	return Summary{
		Score:       w.State.Score,
		MaxAltitude: w.State.MaxAltitude,
		MaxCombo:    w.State.MaxCombo,
		Ticks:       w.State.Ticks,
		NewRecord:   w.NewRecord(),
	}
}

// Snapshot is a deep copy of render-relevant state
type Snapshot struct {
	Width, Height float64
	Holds         []Hold
	Obstacles     []Obstacle
	Particles     []Particle
	Climber       Climber
	Wind          WindGust
	State         GameState
	CameraY       float64
	Shake         float64
}

// Snapshot copies the world for a render pass
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Width:     w.cfg.Width,
		Height:    w.cfg.Height,
		Holds:     make([]Hold, len(w.Holds)),
		Obstacles: make([]Obstacle, len(w.Obstacles)),
		Particles: make([]Particle, len(w.Particles)),
		Climber:   w.Climber,
		Wind:      w.Wind,
		State:     w.State,
		CameraY:   w.CameraY,
		Shake:     w.Shake,
	}
	copy(s.Holds, w.Holds)
	copy(s.Obstacles, w.Obstacles)
	copy(s.Particles, w.Particles)
	return s
}
