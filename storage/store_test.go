package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/portfolio-lab/summit/cry"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Expected open, got %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

// TestHighScoreDefaultsAndPersists verifies the record starts at 0 and survives a reopen
func TestHighScoreDefaultsAndPersists(t *testing.T) {
	s, dir := openTemp(t)

	if n, err := s.HighScore(); err != nil || n != 0 {
		t.Fatalf("Expected 0 with no record, got %d (%v)", n, err)
	}
	if err := s.SetHighScore(340); err != nil {
		t.Fatal(err)
	}
	if err := s.SetHighScore(510); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if n, err := s2.HighScore(); err != nil || n != 510 {
		t.Errorf("Expected 510 after reopen, got %d (%v)", n, err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Errorf("Expected database file, got %v", err)
	}
}

// TestGetMissing verifies ErrNotFound for unknown keys
func TestGetMissing(t *testing.T) {
	s, _ := openTemp(t)
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestCorruptHighScore verifies a non-numeric record is reported
func TestCorruptHighScore(t *testing.T) {
	s, _ := openTemp(t)
	s.Set(HighScoreKey, "lots")
	if _, err := s.HighScore(); err == nil {
		t.Error("Expected error for corrupt record")
	}
}

// TestTopSessions verifies ordering by score and the limit
func TestTopSessions(t *testing.T) {
	s, _ := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)
	for i, score := range []int{50, 300, 120, 300} {
		err := s.RecordSession(Session{
			ID:          string(rune('a' + i)),
			Started:     base.Add(time.Duration(i) * time.Minute),
			Ended:       base.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Score:       score,
			MaxAltitude: float64(score) / 10,
			MaxCombo:    i,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	top, err := s.TopSessions(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(top))
	}
	if top[0].ID != "b" || top[1].ID != "d" || top[2].ID != "c" {
		t.Errorf("Expected b, d, c, got %s, %s, %s", top[0].ID, top[1].ID, top[2].ID)
	}
	if !top[0].Started.Equal(base.Add(time.Minute)) || top[0].MaxAltitude != 30 {
		t.Errorf("Expected fields round-tripped, got %+v", top[0])
	}
}

// TestRecentResults verifies most-recent-first order and rehydrated display fields
func TestRecentResults(t *testing.T) {
	s, _ := openTemp(t)
	now := time.UnixMilli(1_700_000_000_000)
	for i, typ := range []string{"tired", "hungry", "pain"} {
		err := s.AppendResult(cry.Result{
			ID:         typ + "-id",
			Type:       typ,
			Confidence: 94,
			Score:      50,
			Features:   cry.Features{Volume: 40, Intensity: 30, Frequency: 350, Variability: 20},
			Timestamp:  now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	rs, err := s.RecentResults(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 || rs[0].Type != "pain" || rs[1].Type != "hungry" {
		t.Fatalf("Expected pain then hungry, got %+v", rs)
	}
	if rs[0].Icon == "" || rs[0].Title == "" {
		t.Error("Expected display fields from the category table")
	}
	if rs[1].Features.Frequency != 350 || !rs[1].Timestamp.Equal(now.Add(time.Second)) {
		t.Errorf("Expected features and timestamp round-tripped, got %+v", rs[1])
	}
}

// TestOpenOrMemoryFallback verifies an unusable directory degrades to memory
func TestOpenOrMemoryFallback(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenOrMemory(filepath.Join(blocker, "sub"))
	if err != nil {
		t.Fatalf("Expected memory fallback, got %v", err)
	}
	defer s.Close()
	if s.Path() != ":memory:" {
		t.Errorf("Expected in-memory path, got %s", s.Path())
	}
	if err := s.SetHighScore(7); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.HighScore(); n != 7 {
		t.Errorf("Expected 7 from memory store, got %d", n)
	}
}
