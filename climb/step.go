package climb

import (
	"log"
	"math"

	"github.com/portfolio-lab/summit/parameter"
)

// Tick advances the world one fixed step
// Outside of play only particles and shake keep animating
func (w *World) Tick() {
	defer w.publish()
	if w.State.Status != StatusPlaying {
		if w.State.Status != StatusPaused {
			w.updateParticles()
			w.updateCamera()
		}
		return
	}

	w.State.Ticks++
	w.statTicks.Add(1)

	w.updateWind()
	w.updateClimber()
	w.updateHolds()
	w.updateObstacles()
	w.updateParticles()
	w.updateCamera()
	w.updateAltitude()

	if w.OutOfView(w.Climber.Y) {
		w.gameOver()
	}
}

// updateAltitude derives altitude in hold-spacing units from the start height
func (w *World) updateAltitude() {
	s := &w.State
	s.Altitude = math.Max(0, (w.startY-w.Climber.Y)/parameter.HoldSpacing)
	if s.Altitude > s.MaxAltitude {
		s.MaxAltitude = s.Altitude
	}
	s.Difficulty = 1 + int(math.Floor(s.MaxAltitude/parameter.DifficultyStep))
}

// gameOver ends the session and persists the high score only when beaten
func (w *World) gameOver() {
	s := &w.State
	s.Status = StatusGameOver
	w.emit(Event{Type: EventGameOver, X: w.Climber.X, Y: w.Climber.Y, Points: s.Score})

	if s.Score <= s.HighScore {
		return
	}
	s.HighScore = s.Score
	w.emit(Event{Type: EventHighScore, Points: s.Score})

	if w.store == nil {
		return
	}
	if err := w.store.SetHighScore(s.Score); err != nil {
		log.Printf("climb: high score not saved: %v", err)
	}
}

// NewRecord reports whether the finished session set the high score
func (w *World) NewRecord() bool {
	return w.State.Status == StatusGameOver && w.State.Score > 0 && w.State.Score == w.State.HighScore
}
