package climb

import (
	"math"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/physics"
	"github.com/portfolio-lab/summit/vmath"
)

// FindJumpTarget returns the nearest ungrabbed hold more than JumpMinRise above
// and within JumpReachX horizontally, nil when none qualifies
func (w *World) FindJumpTarget() *Hold {
	c := &w.Climber
	var best *Hold
	bestDist := math.Inf(1)

	for i := range w.Holds {
		h := &w.Holds[i]
		if h.Grabbed {
			continue
		}
		if c.Y-h.CenterY() <= parameter.JumpMinRise {
			continue
		}
		if math.Abs(h.CenterX()-c.X) > parameter.JumpReachX {
			continue
		}
		d := math.Hypot(h.CenterX()-c.X, h.CenterY()-c.Y)
		if d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// Jump launches the climber toward the nearest reachable hold
// Returns false and leaves all state untouched when not anchored or no target exists
func (w *World) Jump() bool {
	if w.State.Status != StatusPlaying {
		return false
	}
	c := &w.Climber
	if !c.State.Anchored() {
		return false
	}
	target := w.FindJumpTarget()
	if target == nil {
		return false
	}

	vx, vy := jumpVelocity(c.X, c.Y, target.CenterX(), target.CenterY(), parameter.Gravity)

	if anchor := w.HoldByID(c.Anchor); anchor != nil {
		if anchor.Type == HoldIcy {
			vx += vmath.Range(w.rng, -parameter.IcySlip, parameter.IcySlip)
		}
		anchor.Grabbed = false
	}
	c.Anchor = 0
	c.State = StateJumping
	c.GrabTimer = 0
	physics.SetImpulse(&c.Kinetic, vx, vy)

	w.spawnBurst(ParticleDust, c.X, c.Y+parameter.ClimberHeight/2, parameter.BurstDust)
	w.emit(Event{Type: EventJump, X: c.X, Y: c.Y})
	return true
}

// jumpVelocity solves the launch so the discrete apex sits JumpApexClearance above the
// target center, and horizontal travel under air drag completes on the apex tick
func jumpVelocity(x0, y0, tx, ty, g float64) (vx, vy float64) {
	rise := (y0 - ty) + parameter.JumpApexClearance
	// Euler integration loses about v/2 of height versus the analytic arc; g/2 restores it
	v := math.Sqrt(2*g*rise) + g/2
	ticks := math.Ceil(v / g)
	if ticks < 1 {
		ticks = 1
	}
	d := parameter.AirDrag
	travel := d * (1 - math.Pow(d, ticks)) / (1 - d)
	return (tx - x0) / travel, -v
}

// updateClimber advances stamina, grab timing and airborne physics, then checks landing
func (w *World) updateClimber() {
	c := &w.Climber

	switch c.State {
	case StateGrabbing:
		c.GrabTimer--
		if c.GrabTimer <= 0 {
			c.GrabTimer = 0
			c.State = StateClimbing
		}
		w.updateStamina()

	case StateClimbing:
		w.updateStamina()

	case StateJumping, StateFalling:
		c.VX += w.Wind.Force()
		c.VX *= parameter.AirDrag
		physics.Integrate(&c.Kinetic, parameter.Gravity)
		physics.LimitVY(&c.Kinetic, parameter.MaxFallSpeed)
		c.Rotation = vmath.Clamp(c.VX*0.1, -0.5, 0.5)
		if c.State == StateFalling {
			c.Rotation += 0.15
		}
		w.checkLanding()
	}

	physics.ClampX(&c.Kinetic, parameter.ClimberMargin, w.cfg.Width-parameter.ClimberMargin)
	w.updateHands()
}

// updateStamina drains on icy anchors and recovers elsewhere, slipping off at zero
func (w *World) updateStamina() {
	c := &w.Climber
	anchor := w.HoldByID(c.Anchor)
	if anchor != nil && anchor.Type == HoldIcy {
		c.Stamina -= parameter.StaminaIcyDrain
	} else {
		c.Stamina += parameter.StaminaRecover
	}
	c.Stamina = vmath.Clamp(c.Stamina, 0, parameter.StaminaMax)

	if c.Stamina <= 0 {
		w.fall(0)
	}
}

// checkLanding grabs the first ungrabbed hold in reach while moving downward or level
func (w *World) checkLanding() {
	c := &w.Climber
	if c.VY < 0 {
		return
	}
	for i := range w.Holds {
		h := &w.Holds[i]
		if h.Grabbed {
			continue
		}
		zone := physics.BoxAt(h.X, h.Y, h.Width, h.Height).Expand(parameter.LandReachX, parameter.LandReachY)
		if zone.Contains(c.X, c.Y) {
			w.grab(h)
			return
		}
	}
}

// grab anchors the climber on h, scores it and starts a crumble countdown if needed
func (w *World) grab(h *Hold) {
	c := &w.Climber

	if prev := w.HoldByID(c.Anchor); prev != nil {
		prev.Grabbed = false
	}
	h.Grabbed = true
	c.Anchor = h.ID
	c.State = StateGrabbing
	c.GrabTimer = parameter.GrabTicks
	c.X = vmath.Clamp(h.CenterX(), parameter.ClimberMargin, w.cfg.Width-parameter.ClimberMargin)
	c.Y = h.Y - parameter.ClimberStandOffset
	c.VX, c.VY = 0, 0
	c.Rotation = 0

	points := HoldPoints(h.Type) * ComboMultiplier(w.State.Combo)
	w.State.Score += points
	w.State.Combo++
	if w.State.Combo > w.State.MaxCombo {
		w.State.MaxCombo = w.State.Combo
	}

	if h.Type == HoldCrumbling && !h.CrumbleStarted {
		h.CrumbleStarted = true
		h.CrumbleTimer = parameter.CrumbleTicks
	}

	if h.Type == HoldPerfect {
		w.spawnBurst(ParticleSpark, h.CenterX(), h.Y, parameter.BurstSpark)
		w.emit(Event{Type: EventPerfect, X: h.CenterX(), Y: h.Y, Points: points})
	} else {
		w.spawnBurst(ParticleDust, h.CenterX(), h.Y, parameter.BurstDust)
		w.emit(Event{Type: EventGrab, X: h.CenterX(), Y: h.Y, Points: points})
	}
	if w.State.Combo%5 == 0 {
		w.spawnBurst(ParticleStar, c.X, c.Y, parameter.BurstStar)
	}
}

// fall detaches the climber, releases the anchor and breaks the combo
// knockX is added to horizontal velocity
func (w *World) fall(knockX float64) {
	c := &w.Climber
	if anchor := w.HoldByID(c.Anchor); anchor != nil {
		anchor.Grabbed = false
	}
	c.Anchor = 0
	c.State = StateFalling
	c.GrabTimer = 0
	physics.ApplyImpulse(&c.Kinetic, knockX, 0)
	if c.VY < 0 {
		c.VY = 0
	}
	w.State.Combo = 0
}

// HoldPoints returns base points for landing on a hold type
func HoldPoints(t HoldType) int {
	switch t {
	case HoldPerfect:
		return parameter.ScorePerfect
	case HoldCrumbling:
		return parameter.ScoreCrumbling
	default:
		return parameter.ScoreDefault
	}
}

// ComboMultiplier returns min(combo+1, ComboMax)
func ComboMultiplier(combo int) int {
	if combo+1 > parameter.ComboMax {
		return parameter.ComboMax
	}
	return combo + 1
}

// updateHands places hands on the anchor or raised while airborne
func (w *World) updateHands() {
	c := &w.Climber
	reach := parameter.HandReach
	if c.State == StateFalling {
		reach = -parameter.HandReach / 2
	}
	c.Hands[0] = vmath.Vec2{X: c.X - parameter.HandSpread, Y: c.Y - reach}
	c.Hands[1] = vmath.Vec2{X: c.X + parameter.HandSpread, Y: c.Y - reach}
}
