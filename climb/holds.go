package climb

import (
	"math"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/vmath"
)

// initHolds places the starting anchor and stacks the initial column above it
func (w *World) initHolds() {
	startX := w.cfg.Width/2 - parameter.HoldWidth/2
	startY := w.cfg.Height - parameter.HoldStartOffsetY

	w.Holds = append(w.Holds, Hold{
		ID:     w.newID(),
		X:      startX,
		Y:      startY,
		Width:  parameter.HoldWidth,
		Height: parameter.HoldHeight,
		Type:   HoldStable,
	})

	for i := 1; i < parameter.HoldInitialCount; i++ {
		w.appendHold()
	}
}

// appendHold adds one hold above the current top using the offset and clamp rule
func (w *World) appendHold() {
	top := w.topHold()
	var prevX, prevY float64
	if top != nil {
		prevX, prevY = top.X, top.Y
	} else {
		prevX = w.cfg.Width/2 - parameter.HoldWidth/2
		prevY = w.cfg.Height - parameter.HoldStartOffsetY + parameter.HoldSpacing
	}

	offset := vmath.Range(w.rng, -parameter.HoldMaxOffset, parameter.HoldMaxOffset)
	x := vmath.Clamp(prevX+offset, parameter.HoldMargin, w.cfg.Width-parameter.HoldWidth-parameter.HoldMargin)

	w.Holds = append(w.Holds, Hold{
		ID:     w.newID(),
		X:      x,
		Y:      prevY - parameter.HoldSpacing,
		Width:  parameter.HoldWidth,
		Height: parameter.HoldHeight,
		Type:   PickHoldType(w.rng, w.State.Altitude),
	})
}

// topHold returns the hold with the smallest Y
func (w *World) topHold() *Hold {
	var top *Hold
	for i := range w.Holds {
		if top == nil || w.Holds[i].Y < top.Y {
			top = &w.Holds[i]
		}
	}
	return top
}

// HoldWeights returns crumbling, icy and perfect probabilities for an altitude
// Stable takes the remainder
func HoldWeights(altitude float64) (crumbling, icy, perfect float64) {
	factor := math.Min(math.Max(altitude, 0)/parameter.HoldDifficultyAltitude, parameter.HoldDifficultyCap)
	crumbling = parameter.HoldCrumblingBase + parameter.HoldCrumblingScale*factor
	icy = parameter.HoldIcyBase + parameter.HoldIcyScale*factor
	perfect = parameter.HoldPerfectChance
	return crumbling, icy, perfect
}

// PickHoldType draws a weighted hold type for the given altitude
func PickHoldType(rng vmath.Rand, altitude float64) HoldType {
	crumbling, icy, perfect := HoldWeights(altitude)
	r := rng.Float64()
	switch {
	case r < crumbling:
		return HoldCrumbling
	case r < crumbling+icy:
		return HoldIcy
	case r < crumbling+icy+perfect:
		return HoldPerfect
	default:
		return HoldStable
	}
}

// updateHolds runs crumble countdowns, prunes holds far below the camera and extends the column
func (w *World) updateHolds() {
	pruneBelow := w.CameraY + 2*w.cfg.Height

	kept := w.Holds[:0]
	for i := range w.Holds {
		h := w.Holds[i]

		if h.CrumbleStarted {
			h.CrumbleTimer--
			if h.CrumbleTimer <= 0 {
				w.crumble(&h)
				continue
			}
		}

		if h.Y > pruneBelow && !h.Grabbed {
			continue
		}
		kept = append(kept, h)
	}
	w.Holds = kept

	for {
		top := w.topHold()
		if top != nil && top.Y <= w.CameraY-parameter.HoldLookahead {
			break
		}
		w.appendHold()
	}

	w.statHolds.Store(int64(len(w.Holds)))
}

// crumble handles an expired crumbling hold; the caller drops it from the active set
func (w *World) crumble(h *Hold) {
	w.spawnBurst(ParticleDebris, h.CenterX(), h.CenterY(), parameter.BurstDebris)
	w.Shake = math.Max(w.Shake, parameter.ShakeCrumble)
	w.emit(Event{Type: EventCrumble, X: h.CenterX(), Y: h.CenterY()})

	if w.Climber.Anchor == h.ID {
		h.Grabbed = false
		w.Climber.Anchor = 0
		w.fall(0)
	}
}
