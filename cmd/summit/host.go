package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/climb"
	"github.com/portfolio-lab/summit/engine"
	"github.com/portfolio-lab/summit/input"
	"github.com/portfolio-lab/summit/status"
	"github.com/portfolio-lab/summit/storage"
)

// keyTable loads the default bindings with the optional keymap file applied
func keyTable(path string) (*input.KeyTable, error) {
	base := input.DefaultKeyTable()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(base, override), nil
}

// gameAction maps a game intent to its climb action, ok is false for host intents
func gameAction(it input.IntentType) (climb.Action, bool) {
	switch it {
	case input.IntentPrimary:
		return climb.ActionPrimary, true
	case input.IntentPause:
		return climb.ActionPause, true
	case input.IntentRestart:
		return climb.ActionRestart, true
	}
	return 0, false
}

// soundFor maps a gameplay event to its effect, ok is false for silent events
func soundFor(t climb.EventType) (audio.Sound, bool) {
	switch t {
	case climb.EventJump:
		return audio.SoundJump, true
	case climb.EventGrab:
		return audio.SoundGrab, true
	case climb.EventPerfect:
		return audio.SoundPerfect, true
	case climb.EventCrumble:
		return audio.SoundCrumble, true
	case climb.EventHit:
		return audio.SoundHit, true
	case climb.EventGameOver:
		return audio.SoundGameOver, true
	}
	return 0, false
}

// sessionRecorder persists finished games
type sessionRecorder interface {
	RecordSession(sess storage.Session) error
}

// sessionTracker times each game and records it when it ends
type sessionTracker struct {
	rec sessionRecorder
	now func() time.Time

	started   time.Time
	last      climb.Status
	lastTicks uint64
	recorded  int
}

func newSessionTracker(rec sessionRecorder) *sessionTracker {
	return &sessionTracker{rec: rec, now: time.Now}
}

// Observe is called once per frame with the state after the frame's steps
func (t *sessionTracker) Observe(st climb.Status, events []climb.Event, sum climb.Summary) {
	if st == climb.StatusPlaying {
		fresh := t.last == climb.StatusMenu || t.last == climb.StatusGameOver || sum.Ticks < t.lastTicks
		if fresh || t.started.IsZero() {
			t.started = t.now()
		}
	}
	t.last = st
	t.lastTicks = sum.Ticks

	for _, ev := range events {
		if ev.Type != climb.EventGameOver {
			continue
		}
		t.record(sum)
	}
}

func (t *sessionTracker) record(sum climb.Summary) {
	ended := t.now()
	started := t.started
	if started.IsZero() {
		started = ended
	}
	t.started = time.Time{}
	if t.rec == nil {
		return
	}

	sess := storage.Session{
		ID:          uuid.NewString(),
		Started:     started,
		Ended:       ended,
		Score:       sum.Score,
		MaxAltitude: sum.MaxAltitude,
		MaxCombo:    sum.MaxCombo,
	}
	if err := t.rec.RecordSession(sess); err != nil {
		log.Printf("summit: session not saved: %v", err)
		return
	}
	t.recorded++
	log.Printf("summit: session %s score=%d altitude=%.1f combo=%d", sess.ID, sess.Score, sess.MaxAltitude, sess.MaxCombo)
}

// metricLines formats the registry for the debug overlay
func metricLines(reg *status.Registry, sched *engine.Scheduler) []string {
	reg.Ints.Get("sched.ticks").Store(int64(sched.TickCount()))
	reg.Ints.Get("sched.dropped").Store(int64(sched.Dropped()))
	return []string{reg.Line()}
}

// printStats writes the high score and best sessions
func printStats(w io.Writer, store *storage.Store, limit int) error {
	best, err := store.HighScore()
	if err != nil {
		return err
	}
	top, err := store.TopSessions(limit)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "High score: %d\n", best)
	if len(top) == 0 {
		p.Fprintf(w, "No sessions recorded\n")
		return nil
	}
	p.Fprintf(w, "%-4s %10s %10s %6s  %s\n", "#", "SCORE", "ALTITUDE", "COMBO", "PLAYED")
	for i, s := range top {
		p.Fprintf(w, "%-4d %10d %9.1fm %6d  %s\n", i+1, s.Score, s.MaxAltitude, s.MaxCombo, s.Started.Format("2006-01-02 15:04"))
	}
	return nil
}
