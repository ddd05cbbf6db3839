package status

import (
	"sort"
	"sync"
)

// MetricMap names metric cells of type T
// Cells are created on first Get and never move, so callers keep the pointer and skip the lookup
type MetricMap[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
	keys  []string // sorted, grown on insert
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{cells: make(map[string]*T)}
}

// Get returns the cell named key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	cell := m.cells[key]
	m.mu.RUnlock()
	if cell != nil {
		return cell
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cell = m.cells[key]; cell != nil {
		return cell
	}
	cell = new(T)
	m.cells[key] = cell

	i := sort.SearchStrings(m.keys, key)
	m.keys = append(m.keys, "")
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = key
	return cell
}

// Range visits cells in key order
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	m.mu.RLock()
	keys := append([]string(nil), m.keys...)
	m.mu.RUnlock()

	for _, k := range keys {
		fn(k, m.Get(k))
	}
}

// Count returns the number of cells
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}
