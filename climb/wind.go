package climb

import (
	"math"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/vmath"
)

// windChance is the per-tick activation probability, 0.5% at the base rising to 2%
func windChance(altitude float64) float64 {
	return parameter.WindBaseChance + parameter.WindScaleChance*math.Min(math.Max(altitude, 0)/parameter.WindAltitudeRef, 1)
}

// updateWind counts down an active gust or rolls for a new one
func (w *World) updateWind() {
	g := &w.Wind
	if g.Active {
		g.Timer--
		if g.Timer <= 0 {
			*g = WindGust{}
		}
		return
	}

	if !vmath.Chance(w.rng, windChance(w.State.Altitude)) {
		return
	}

	duration := parameter.WindMinTicks + w.rng.Intn(parameter.WindMaxTicks-parameter.WindMinTicks+1)
	*g = WindGust{
		Active:    true,
		Direction: vmath.Sign(w.rng),
		Strength:  vmath.Range(w.rng, parameter.WindMinStrength, parameter.WindMaxStrength),
		Duration:  duration,
		Timer:     duration,
	}
	w.emit(Event{Type: EventWind, X: g.Direction})
}
