package cry

import (
	"sync"
	"time"

	"github.com/portfolio-lab/summit/parameter"
)

// Result is one classification
type Result struct {
	ID          string
	Type        string
	Icon        string
	Title       string
	Description string
	Confidence  float64
	Score       int
	Features    Features
	Timestamp   time.Time
}

// History is a capped most-recent-first list of results
type History struct {
	mu    sync.RWMutex
	items []Result
	limit int
}

// NewHistory creates a history holding at most limit results, limit <= 0 takes the default
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = parameter.CryHistorySize
	}
	return &History{limit: limit}
}

// Push prepends r, evicting the oldest beyond the limit
func (h *History) Push(r Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, Result{})
	copy(h.items[1:], h.items)
	h.items[0] = r
	if len(h.items) > h.limit {
		h.items = h.items[:h.limit]
	}
}

// Restore replaces the contents with rs, already most-recent-first
func (h *History) Restore(rs []Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(rs) > h.limit {
		rs = rs[:h.limit]
	}
	h.items = append(h.items[:0], rs...)
}

// Items returns a copy, most recent first
func (h *History) Items() []Result {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Result, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of held results
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}
