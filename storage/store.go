package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// FileName is the database file inside the data directory
const FileName = "summit.db"

// HighScoreKey holds the climbing high score in the kv table
const HighScoreKey = "climb.highscore"

// ErrNotFound is returned for missing keys
var ErrNotFound = errors.New("not found")

// Store is the sqlite-backed persistence for both demos
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates <dir>/summit.db
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	return open(path)
}

// OpenMemory opens a private in-memory database, used when the data directory is unusable
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

// OpenOrMemory opens dir, falling back to memory and logging the failure
func OpenOrMemory(dir string) (*Store, error) {
	s, err := Open(dir)
	if err == nil {
		return s, nil
	}
	log.Printf("storage: %v, using in-memory store", err)
	return OpenMemory()
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// One connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS climb_sessions (
			id TEXT PRIMARY KEY,
			started INTEGER NOT NULL,
			ended INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_altitude REAL NOT NULL,
			max_combo INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cry_results (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			type TEXT NOT NULL,
			confidence REAL NOT NULL,
			score INTEGER NOT NULL,
			volume REAL NOT NULL,
			intensity REAL NOT NULL,
			frequency REAL NOT NULL,
			variability REAL NOT NULL,
			created INTEGER NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	return nil
}

// Path returns the database location, ":memory:" for the fallback
func (s *Store) Path() string {
	return s.path
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Get reads a kv entry, ErrNotFound when absent
func (s *Store) Get(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: get %s: %w", key, err)
	}
	return v, nil
}

// Set writes a kv entry, last writer wins
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: set %s: %w", key, err)
	}
	return nil
}

// HighScore returns the stored climbing record, 0 when none exists
func (s *Store) HighScore() (int, error) {
	v, err := s.Get(HighScoreKey)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt high score %q: %w", v, err)
	}
	return n, nil
}

// SetHighScore stores the climbing record
func (s *Store) SetHighScore(score int) error {
	return s.Set(HighScoreKey, strconv.Itoa(score))
}
