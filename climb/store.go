package climb

// HighScoreStore persists the best score across sessions
// Implementations may fail; the world degrades to an unsaved zero
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// MemoryStore keeps the high score in process memory
type MemoryStore struct {
	Best int
}

func (m *MemoryStore) HighScore() (int, error) { return m.Best, nil }

func (m *MemoryStore) SetHighScore(score int) error {
	m.Best = score
	return nil
}
