package parameter

import "time"

// Canvas and loop
const (
	// CanvasWidth and CanvasHeight are the logical play area in canvas units
	CanvasWidth  = 400
	CanvasHeight = 700

	// TickRate is simulation steps per second
	TickRate = 60
	// TickInterval is the fixed timestep duration
	TickInterval = time.Second / TickRate
)

// Holds
const (
	HoldWidth   = 60
	HoldHeight  = 15
	HoldSpacing = 120.0
	// HoldMaxOffset bounds the horizontal shift between consecutive holds
	HoldMaxOffset = 75.0
	// HoldMargin keeps holds away from the canvas edges
	HoldMargin = 20.0
	// HoldInitialCount includes the starting anchor
	HoldInitialCount = 20
	// HoldStartOffsetY places the starting hold above the canvas bottom
	HoldStartOffsetY = 100.0
	// HoldLookahead triggers generation when the top hold is closer than this to the camera's leading edge
	HoldLookahead = 500.0

	// Hold type weights: base + scale*min(altitude/HoldDifficultyAltitude, HoldDifficultyCap)
	HoldCrumblingBase      = 0.10
	HoldCrumblingScale     = 0.20
	HoldIcyBase            = 0.15
	HoldIcyScale           = 0.15
	HoldPerfectChance      = 0.05
	HoldDifficultyAltitude = 50.0
	HoldDifficultyCap      = 0.6

	// CrumbleTicks is the countdown after a crumbling hold is grabbed (1.5s)
	CrumbleTicks = 90
)

// Climber
const (
	ClimberWidth  = 30.0
	ClimberHeight = 40.0
	// ClimberMargin bounds climber X to [ClimberMargin, CanvasWidth-ClimberMargin]
	ClimberMargin = 20.0
	// ClimberStandOffset is the distance from a grabbed hold's top edge to the climber center
	ClimberStandOffset = 50.0

	// JumpMinRise is the minimum vertical gap for a jump target (strictly greater)
	JumpMinRise = 30.0
	// JumpReachX is the maximum horizontal distance to a jump target
	JumpReachX = 100.0
	// JumpApexClearance lifts the apex above the target hold center so the descent lands
	JumpApexClearance = 20.0
	// IcySlip is the maximum random horizontal velocity added when leaving an icy hold
	IcySlip = 0.5

	// LandReachX and LandReachY extend hold half-extents for landing detection
	LandReachX = 20.0
	LandReachY = 25.0

	// GrabTicks is the duration of the transitional grabbing state (~200ms)
	GrabTicks = 12

	StaminaMax      = 100.0
	StaminaIcyDrain = 0.05
	StaminaRecover  = 0.2

	// HandSpread is the horizontal distance of each hand from the climber center
	HandSpread = 10.0
	// HandReach is how far hands extend above the climber center
	HandReach = 22.0
)

// Physics
const (
	Gravity = 0.35
	// MaxFallSpeed caps downward velocity per tick
	MaxFallSpeed = 18.0
	// AirDrag scales horizontal velocity of an airborne climber each tick
	AirDrag = 0.99
	// CameraFollowFactor is the single-pole smoothing coefficient per tick
	CameraFollowFactor = 0.08
	// CameraLeadRatio positions the climber this fraction of the canvas below the camera top
	CameraLeadRatio = 0.6
	// GameOverMargin is the distance below the visible area that ends the game
	GameOverMargin = 50.0

	ShakeCollision = 8.0
	ShakeCrumble   = 5.0
	ShakeDecay     = 0.9
	ShakeThreshold = 0.1
)

// Scoring
const (
	ScorePerfect   = 50
	ScoreCrumbling = 30
	ScoreDefault   = 10
	ComboMax       = 10
	// DifficultyStep is altitude per difficulty level
	DifficultyStep = 10
)

// Obstacles
const (
	// ObstacleStartAltitude gates obstacle spawning
	ObstacleStartAltitude = 5.0
	ObstacleBaseChance    = 0.004
	ObstacleScaleChance   = 0.01
	ObstacleAltitudeRef   = 100.0
	// ObstacleBirdRatio is the share of spawns that are birds
	ObstacleBirdRatio = 0.35
	ObstacleMargin    = 80.0

	RockMinSize  = 10.0
	RockMaxSize  = 18.0
	RockMinSpeed = 2.0
	RockMaxSpeed = 4.0
	RockSpin     = 0.08

	BirdSize     = 12.0
	BirdMinSpeed = 1.5
	BirdMaxSpeed = 3.0
	BirdBob      = 0.6
)

// Wind
const (
	WindBaseChance  = 0.005
	WindScaleChance = 0.015
	WindAltitudeRef = 100.0
	WindMinStrength = 0.05
	WindMaxStrength = 0.15
	WindMinTicks    = 60
	WindMaxTicks    = 180
)

// Particles
const (
	MaxParticles    = 400
	ParticleGravity = 0.1
	BurstDust       = 8
	BurstSpark      = 16
	BurstDebris     = 12
	BurstStar       = 10
	ParticleMinLife = 20
	ParticleMaxLife = 45
)
