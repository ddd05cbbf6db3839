package climb

import (
	"math"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/physics"
	"github.com/portfolio-lab/summit/vmath"
)

// obstacleChance is the per-tick spawn probability at an altitude
func obstacleChance(altitude float64) float64 {
	if altitude < parameter.ObstacleStartAltitude {
		return 0
	}
	return parameter.ObstacleBaseChance + parameter.ObstacleScaleChance*math.Min(altitude/parameter.ObstacleAltitudeRef, 1)
}

// spawnObstacle adds a rock falling from above the view or a bird crossing it
func (w *World) spawnObstacle() {
	o := Obstacle{ID: w.newID()}

	if vmath.Chance(w.rng, parameter.ObstacleBirdRatio) {
		side := vmath.Sign(w.rng)
		o.Type = ObstacleBird
		o.Size = parameter.BirdSize
		if side < 0 {
			o.X = w.cfg.Width + o.Size
		} else {
			o.X = -o.Size
		}
		o.Y = w.CameraY + vmath.Range(w.rng, 0.1, 0.6)*w.cfg.Height
		o.VX = side * vmath.Range(w.rng, parameter.BirdMinSpeed, parameter.BirdMaxSpeed)
	} else {
		o.Type = ObstacleRock
		o.Size = vmath.Range(w.rng, parameter.RockMinSize, parameter.RockMaxSize)
		o.X = vmath.Range(w.rng, parameter.HoldMargin, w.cfg.Width-parameter.HoldMargin)
		o.Y = w.CameraY - o.Size*2
		o.VX = vmath.Range(w.rng, -0.5, 0.5)
		o.VY = vmath.Range(w.rng, parameter.RockMinSpeed, parameter.RockMaxSpeed)
	}

	w.Obstacles = append(w.Obstacles, o)
}

// updateObstacles spawns, moves, collides and culls obstacles
func (w *World) updateObstacles() {
	if vmath.Chance(w.rng, obstacleChance(w.State.Altitude)) {
		w.spawnObstacle()
	}

	wind := w.Wind.Force()
	box := w.climberBox()
	m := parameter.ObstacleMargin
	view := physics.BoxAt(-m, w.CameraY-2*m, w.cfg.Width+2*m, w.cfg.Height+3*m)

	kept := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		switch o.Type {
		case ObstacleRock:
			o.VX += wind
			o.X += o.VX
			o.Y += o.VY
			o.Rotation += parameter.RockSpin
		case ObstacleBird:
			o.Rotation += 0.15
			o.X += o.VX + wind
			o.Y += math.Sin(o.Rotation) * parameter.BirdBob
		}

		if !view.Overlaps(physics.Box{CX: o.X, CY: o.Y, HW: o.Size / 2, HH: o.Size / 2}) {
			continue
		}

		if physics.CircleOverlapsBox(o.X, o.Y, o.Size/2, box) {
			w.hit(&o)
			continue
		}
		kept = append(kept, o)
	}
	w.Obstacles = kept
}

// climberBox is the collision rectangle centered on the climber
func (w *World) climberBox() physics.Box {
	return physics.Box{
		CX: w.Climber.X,
		CY: w.Climber.Y,
		HW: parameter.ClimberWidth / 2,
		HH: parameter.ClimberHeight / 2,
	}
}

// hit applies an obstacle collision: the climber falls, combo resets, the obstacle shatters
func (w *World) hit(o *Obstacle) {
	c := &w.Climber
	w.spawnBurst(ParticleDebris, o.X, o.Y, parameter.BurstDebris/2)
	w.Shake = math.Max(w.Shake, parameter.ShakeCollision)
	w.emit(Event{Type: EventHit, X: c.X, Y: c.Y})

	knock := 1.5
	if o.X > c.X {
		knock = -knock
	}
	w.fall(knock)
}
