package storage

import (
	"fmt"
	"time"

	"github.com/portfolio-lab/summit/cry"
)

// Session is one finished climbing game
type Session struct {
	ID          string
	Started     time.Time
	Ended       time.Time
	Score       int
	MaxAltitude float64
	MaxCombo    int
}

// RecordSession appends a finished game
func (s *Store) RecordSession(sess Session) error {
	_, err := s.db.Exec(
		`INSERT INTO climb_sessions (id, started, ended, score, max_altitude, max_combo)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Started.UnixMilli(), sess.Ended.UnixMilli(), sess.Score, sess.MaxAltitude, sess.MaxCombo,
	)
	if err != nil {
		return fmt.Errorf("storage: record session: %w", err)
	}
	return nil
}

// TopSessions returns the best games by score, earliest first among equal scores
func (s *Store) TopSessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, started, ended, score, max_altitude, max_combo
		FROM climb_sessions ORDER BY score DESC, started ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: top sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var started, ended int64
		if err := rows.Scan(&sess.ID, &started, &ended, &sess.Score, &sess.MaxAltitude, &sess.MaxCombo); err != nil {
			return nil, fmt.Errorf("storage: scan session: %w", err)
		}
		sess.Started = time.UnixMilli(started)
		sess.Ended = time.UnixMilli(ended)
		out = append(out, sess)
	}
	return out, rows.Err()
}

// AppendResult records one classification
func (s *Store) AppendResult(r cry.Result) error {
	f := r.Features
	_, err := s.db.Exec(
		`INSERT INTO cry_results (id, type, confidence, score, volume, intensity, frequency, variability, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Type, r.Confidence, r.Score, f.Volume, f.Intensity, f.Frequency, f.Variability, r.Timestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: append result: %w", err)
	}
	return nil
}

// RecentResults returns up to limit classifications, most recent first
// Display fields are rehydrated from the category table
func (s *Store) RecentResults(limit int) ([]cry.Result, error) {
	rows, err := s.db.Query(
		`SELECT id, type, confidence, score, volume, intensity, frequency, variability, created
		FROM cry_results ORDER BY seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: recent results: %w", err)
	}
	defer rows.Close()

	var out []cry.Result
	for rows.Next() {
		var r cry.Result
		var created int64
		f := &r.Features
		if err := rows.Scan(&r.ID, &r.Type, &r.Confidence, &r.Score, &f.Volume, &f.Intensity, &f.Frequency, &f.Variability, &created); err != nil {
			return nil, fmt.Errorf("storage: scan result: %w", err)
		}
		r.Timestamp = time.UnixMilli(created)
		for _, c := range cry.Categories {
			if c.Type == r.Type {
				r.Icon, r.Title, r.Description = c.Icon, c.Title, c.Description
				break
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
