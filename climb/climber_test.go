package climb

import (
	"errors"
	"testing"

	"github.com/portfolio-lab/summit/parameter"
)

var errStore = errors.New("store offline")

// placeHoldAbove replaces the wall with the anchor plus one hold of type t centered over the climber
func placeHoldAbove(w *World, t HoldType, y float64) *Hold {
	anchor := w.Holds[0]
	w.Holds = []Hold{anchor, {
		ID:     w.newID(),
		X:      w.Climber.X - parameter.HoldWidth/2,
		Y:      y,
		Width:  parameter.HoldWidth,
		Height: parameter.HoldHeight,
		Type:   t,
	}}
	return &w.Holds[1]
}

func runUntilAnchored(w *World, limit int) bool {
	for i := 0; i < limit; i++ {
		w.Tick()
		if w.Climber.State.Anchored() {
			return true
		}
	}
	return false
}

// TestJumpToPerfectHold verifies a jump onto a perfect hold scores 50 times the multiplier and sparks
func TestJumpToPerfectHold(t *testing.T) {
	w := newPlaying(t, nil)
	target := placeHoldAbove(w, HoldPerfect, w.Holds[0].Y-parameter.HoldSpacing)
	targetID := target.ID

	if !w.HandleAction(ActionPrimary) {
		t.Fatal("Expected jump to start")
	}
	if w.Climber.State != StateJumping || w.Climber.VY >= 0 {
		t.Fatalf("Expected upward jump, got state %s vy %.2f", w.Climber.State, w.Climber.VY)
	}
	w.DrainEvents()

	if !runUntilAnchored(w, 120) {
		t.Fatalf("Expected landing, climber at (%.1f, %.1f) state %s", w.Climber.X, w.Climber.Y, w.Climber.State)
	}
	if w.Climber.Anchor != targetID {
		t.Errorf("Expected anchor %d, got %d", targetID, w.Climber.Anchor)
	}
	if w.State.Score != 50 {
		t.Errorf("Expected score 50, got %d", w.State.Score)
	}
	if w.State.Combo != 1 || w.State.MaxCombo != 1 {
		t.Errorf("Expected combo 1, got %d (max %d)", w.State.Combo, w.State.MaxCombo)
	}
	if w.Climber.State != StateGrabbing {
		t.Errorf("Expected grabbing state after landing, got %s", w.Climber.State)
	}

	sparks := 0
	for _, p := range w.Particles {
		if p.Type == ParticleSpark {
			sparks++
		}
	}
	if sparks == 0 {
		t.Error("Expected spark particles after a perfect landing")
	}

	var perfect bool
	for _, ev := range w.DrainEvents() {
		if ev.Type == EventPerfect && ev.Points == 50 {
			perfect = true
		}
	}
	if !perfect {
		t.Error("Expected a perfect event worth 50")
	}
}

// TestComboMultiplierScoring verifies the multiplier applies before the combo increments
func TestComboMultiplierScoring(t *testing.T) {
	w := newPlaying(t, nil)
	placeHoldAbove(w, HoldStable, w.Holds[0].Y-parameter.HoldSpacing)
	w.State.Combo = 3

	w.HandleAction(ActionPrimary)
	if !runUntilAnchored(w, 120) {
		t.Fatal("Expected landing")
	}
	if w.State.Score != 10*4 {
		t.Errorf("Expected score 40, got %d", w.State.Score)
	}
	if w.State.Combo != 4 {
		t.Errorf("Expected combo 4, got %d", w.State.Combo)
	}
}

// TestGrabTransition verifies grabbing returns to climbing after GrabTicks
func TestGrabTransition(t *testing.T) {
	w := newPlaying(t, nil)
	placeHoldAbove(w, HoldStable, w.Holds[0].Y-parameter.HoldSpacing)
	w.HandleAction(ActionPrimary)
	if !runUntilAnchored(w, 120) {
		t.Fatal("Expected landing")
	}
	for i := 0; i < parameter.GrabTicks; i++ {
		w.Tick()
	}
	if w.Climber.State != StateClimbing {
		t.Errorf("Expected climbing after %d ticks, got %s", parameter.GrabTicks, w.Climber.State)
	}
}

// TestJumpWithoutTarget verifies jump is a no-op when no hold qualifies
func TestJumpWithoutTarget(t *testing.T) {
	w := newPlaying(t, nil)
	w.Holds = w.Holds[:1]
	before := w.Climber
	score := w.State.Score

	if w.Jump() {
		t.Error("Expected jump to be rejected")
	}
	if w.Climber != before {
		t.Errorf("Expected climber unchanged, got %+v", w.Climber)
	}
	if w.State.Score != score {
		t.Errorf("Expected score unchanged, got %d", w.State.Score)
	}
	if len(w.DrainEvents()) != 0 {
		t.Error("Expected no events")
	}
}

// TestJumpTargetFilters verifies rise, reach and grabbed filters and nearest selection
func TestJumpTargetFilters(t *testing.T) {
	w := newPlaying(t, nil)
	c := w.Climber
	anchor := w.Holds[0]
	mk := func(id int, cx, cy float64) Hold {
		return Hold{
			ID:     id,
			X:      cx - parameter.HoldWidth/2,
			Y:      cy - parameter.HoldHeight/2,
			Width:  parameter.HoldWidth,
			Height: parameter.HoldHeight,
		}
	}

	w.Holds = []Hold{
		anchor,
		mk(100, c.X, c.Y-30),     // rise not strictly greater than 30
		mk(101, c.X+101, c.Y-80), // out of horizontal reach
		mk(102, c.X+100, c.Y-80), // reachable edge
		mk(103, c.X+10, c.Y-60),  // nearest
		mk(104, c.X-20, c.Y-200), // farther
	}
	if got := w.FindJumpTarget(); got == nil || got.ID != 103 {
		t.Fatalf("Expected target 103, got %+v", got)
	}

	w.HoldByID(103).Grabbed = true
	if got := w.FindJumpTarget(); got == nil || got.ID != 102 {
		t.Errorf("Expected target 102 once 103 is grabbed, got %+v", got)
	}
}

// TestJumpFromAirRejected verifies only anchored climbers can jump
func TestJumpFromAirRejected(t *testing.T) {
	w := newPlaying(t, nil)
	placeHoldAbove(w, HoldStable, w.Holds[0].Y-parameter.HoldSpacing)
	if !w.Jump() {
		t.Fatal("Expected first jump")
	}
	vx, vy := w.Climber.VX, w.Climber.VY
	if w.Jump() {
		t.Error("Expected mid-air jump to be rejected")
	}
	if w.Climber.VX != vx || w.Climber.VY != vy {
		t.Error("Expected velocity unchanged by rejected jump")
	}
}

// TestObstacleCollision verifies a hit knocks the climber off and breaks the combo
func TestObstacleCollision(t *testing.T) {
	w := newPlaying(t, nil)
	anchorID := w.Climber.Anchor
	w.State.Combo = 4

	w.Obstacles = append(w.Obstacles, Obstacle{ID: w.newID(), Type: ObstacleRock, Size: 14})
	w.Obstacles[0].X = w.Climber.X + 5
	w.Obstacles[0].Y = w.Climber.Y

	w.Tick()

	if w.Climber.State != StateFalling {
		t.Errorf("Expected falling after collision, got %s", w.Climber.State)
	}
	if w.State.Combo != 0 {
		t.Errorf("Expected combo reset, got %d", w.State.Combo)
	}
	if w.Climber.Anchor != 0 {
		t.Errorf("Expected anchor released, got %d", w.Climber.Anchor)
	}
	if h := w.HoldByID(anchorID); h == nil || h.Grabbed {
		t.Error("Expected former anchor present and ungrabbed")
	}
	if w.GrabbedCount() != 0 {
		t.Errorf("Expected no grabbed holds, got %d", w.GrabbedCount())
	}
	if len(w.Obstacles) != 0 {
		t.Errorf("Expected obstacle consumed by the hit, got %d", len(w.Obstacles))
	}
	if w.Shake != parameter.ShakeCollision*parameter.ShakeDecay {
		t.Errorf("Expected shake %.2f after one decay, got %.2f", parameter.ShakeCollision*parameter.ShakeDecay, w.Shake)
	}
	if w.Climber.VX >= 0 {
		t.Errorf("Expected knockback away from the obstacle, got vx %.2f", w.Climber.VX)
	}
}

// TestCrumblingAnchorExpires verifies an expired crumbling anchor drops the climber and disappears
func TestCrumblingAnchorExpires(t *testing.T) {
	w := newPlaying(t, nil)
	anchor := &w.Holds[0]
	anchor.Type = HoldCrumbling
	anchor.CrumbleStarted = true
	anchor.CrumbleTimer = 1
	anchorID := anchor.ID
	w.State.Combo = 2

	w.Tick()

	if w.HoldByID(anchorID) != nil {
		t.Error("Expected crumbled hold removed")
	}
	if w.Climber.State != StateFalling {
		t.Errorf("Expected falling, got %s", w.Climber.State)
	}
	if w.State.Combo != 0 {
		t.Errorf("Expected combo reset, got %d", w.State.Combo)
	}
	if w.Shake <= 0 {
		t.Error("Expected screen shake from the crumble")
	}

	debris := 0
	for _, p := range w.Particles {
		if p.Type == ParticleDebris {
			debris++
		}
	}
	if debris == 0 {
		t.Error("Expected debris particles")
	}
}

// TestCrumbleCountdownStartsOnGrab verifies landing on a crumbling hold arms its timer
func TestCrumbleCountdownStartsOnGrab(t *testing.T) {
	w := newPlaying(t, nil)
	h := placeHoldAbove(w, HoldCrumbling, w.Holds[0].Y-parameter.HoldSpacing)
	id := h.ID
	w.HandleAction(ActionPrimary)
	if !runUntilAnchored(w, 120) {
		t.Fatal("Expected landing")
	}
	got := w.HoldByID(id)
	if got == nil || !got.CrumbleStarted {
		t.Fatal("Expected crumble countdown started")
	}
	if got.CrumbleTimer > parameter.CrumbleTicks || got.CrumbleTimer < parameter.CrumbleTicks-1 {
		t.Errorf("Expected timer near %d, got %d", parameter.CrumbleTicks, got.CrumbleTimer)
	}
	if w.State.Score != parameter.ScoreCrumbling {
		t.Errorf("Expected %d points, got %d", parameter.ScoreCrumbling, w.State.Score)
	}
}

// TestStaminaDrainAndSlip verifies icy anchors drain stamina and an empty bar slips off
func TestStaminaDrainAndSlip(t *testing.T) {
	w := newPlaying(t, nil)
	w.Holds[0].Type = HoldIcy
	w.Climber.Stamina = parameter.StaminaIcyDrain * 2.5

	w.Tick()
	if w.Climber.State.Airborne() {
		t.Fatal("Expected climber still anchored after one tick")
	}
	w.Tick()
	w.Tick()
	if w.Climber.State != StateFalling {
		t.Errorf("Expected slip at zero stamina, got %s (stamina %.3f)", w.Climber.State, w.Climber.Stamina)
	}
	if w.GrabbedCount() != 0 {
		t.Error("Expected icy anchor released")
	}

	w2 := newPlaying(t, nil)
	w2.Climber.Stamina = 50
	w2.Tick()
	if w2.Climber.Stamina != 50+parameter.StaminaRecover {
		t.Errorf("Expected recovery on stable hold, got %.2f", w2.Climber.Stamina)
	}
}

// TestComboMultiplierCap verifies the multiplier saturates at ComboMax
func TestComboMultiplierCap(t *testing.T) {
	cases := map[int]int{0: 1, 1: 2, 8: 9, 9: 10, 25: 10}
	for combo, want := range cases {
		if got := ComboMultiplier(combo); got != want {
			t.Errorf("Expected multiplier %d for combo %d, got %d", want, combo, got)
		}
	}
}
