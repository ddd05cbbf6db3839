package climb

import (
	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/vmath"
)

// updateCamera eases the camera toward its target above the climber
// The camera only ratchets upward, so a falling climber drops out of the view
func (w *World) updateCamera() {
	target := w.Climber.Y - parameter.CameraLeadRatio*w.cfg.Height
	if target < w.CameraY {
		w.CameraY = vmath.Approach(w.CameraY, target, parameter.CameraFollowFactor)
	}

	if w.Shake > 0 {
		w.Shake *= parameter.ShakeDecay
		if w.Shake < parameter.ShakeThreshold {
			w.Shake = 0
		}
	}
}

// ShakeOffset draws a render-only offset in [-shake, shake] on both axes
func ShakeOffset(shake float64, rng vmath.Rand) (dx, dy float64) {
	if shake <= 0 {
		return 0, 0
	}
	return vmath.Range(rng, -shake, shake), vmath.Range(rng, -shake, shake)
}

// OutOfView reports whether y is past the bottom of the visible area plus the game over margin
func (w *World) OutOfView(y float64) bool {
	return y > w.CameraY+w.cfg.Height+parameter.GameOverMargin
}
