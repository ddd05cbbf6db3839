package climb

import (
	"github.com/portfolio-lab/summit/physics"
	"github.com/portfolio-lab/summit/vmath"
)

// HoldType determines scoring and behavior when grabbed
type HoldType uint8

const (
	HoldStable HoldType = iota
	HoldCrumbling
	HoldIcy
	HoldPerfect
)

func (t HoldType) String() string {
	switch t {
	case HoldCrumbling:
		return "crumbling"
	case HoldIcy:
		return "icy"
	case HoldPerfect:
		return "perfect"
	default:
		return "stable"
	}
}

// Hold is a grip on the wall, X/Y is the top-left corner
type Hold struct {
	ID      int
	X, Y    float64
	Width   float64
	Height  float64
	Type    HoldType
	Grabbed bool

	// CrumbleStarted is set on first grab of a crumbling hold; CrumbleTimer then counts down in ticks
	CrumbleStarted bool
	CrumbleTimer   int
}

func (h *Hold) CenterX() float64 { return h.X + h.Width/2 }
func (h *Hold) CenterY() float64 { return h.Y + h.Height/2 }

// ObstacleType selects motion pattern
type ObstacleType uint8

const (
	ObstacleRock ObstacleType = iota
	ObstacleBird
)

func (t ObstacleType) String() string {
	if t == ObstacleBird {
		return "bird"
	}
	return "rock"
}

// Obstacle is a hazard whose bounding circle of diameter Size knocks the climber off
type Obstacle struct {
	ID int
	physics.Kinetic
	Type     ObstacleType
	Size     float64
	Rotation float64
}

// ParticleType selects rendering and motion
type ParticleType uint8

const (
	ParticleDust ParticleType = iota
	ParticleSpark
	ParticleDebris
	ParticleStar
)

func (t ParticleType) String() string {
	switch t {
	case ParticleSpark:
		return "spark"
	case ParticleDebris:
		return "debris"
	case ParticleStar:
		return "star"
	default:
		return "dust"
	}
}

// Particle is an ephemeral visual effect, removed when Life reaches 0
type Particle struct {
	physics.Kinetic
	Life    int
	MaxLife int
	Size    float64
	Color   uint32 // 0xRRGGBB
	Type    ParticleType
}

// ClimberState is the climber's state machine position
type ClimberState uint8

const (
	StateClimbing ClimberState = iota
	StateJumping
	StateFalling
	StateGrabbing
)

func (s ClimberState) String() string {
	switch s {
	case StateJumping:
		return "jumping"
	case StateFalling:
		return "falling"
	case StateGrabbing:
		return "grabbing"
	default:
		return "climbing"
	}
}

// Anchored reports whether the climber hangs on a hold
func (s ClimberState) Anchored() bool {
	return s == StateClimbing || s == StateGrabbing
}

// Airborne reports whether physics integration applies
func (s ClimberState) Airborne() bool {
	return s == StateJumping || s == StateFalling
}

// Climber is the player entity, X/Y is the body center
type Climber struct {
	physics.Kinetic
	Rotation  float64
	State     ClimberState
	Stamina   float64
	Hands     [2]vmath.Vec2
	GrabTimer int
	Anchor    int // Hold ID, 0 when not anchored
}

// WindGust is a transient lateral force on airborne entities
type WindGust struct {
	Active    bool
	Direction float64 // -1 or +1
	Strength  float64
	Duration  int
	Timer     int
}

// Force returns the horizontal acceleration applied this tick
func (w *WindGust) Force() float64 {
	if !w.Active {
		return 0
	}
	return w.Direction * w.Strength
}

// Status is the top-level game state
type Status uint8

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameover"
	default:
		return "menu"
	}
}

// GameState holds scoring and progression; HighScore persists across sessions
type GameState struct {
	Status      Status
	Score       int
	HighScore   int
	Altitude    float64
	MaxAltitude float64
	Difficulty  int
	Combo       int
	MaxCombo    int
	Ticks       uint64
}

// EventType identifies gameplay events drained by the host for audio and logging
type EventType uint8

const (
	EventJump EventType = iota
	EventGrab
	EventPerfect
	EventCrumble
	EventHit
	EventWind
	EventGameOver
	EventHighScore
)

// Event is emitted during a tick
type Event struct {
	Type   EventType
	X, Y   float64
	Points int
}

// Summary describes a finished game
type Summary struct {
	Score       int
	MaxAltitude float64
	MaxCombo    int
	Ticks       uint64
	NewRecord   bool
}
