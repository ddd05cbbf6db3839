package status

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Registry is the metrics facade shared by the simulation and the audio pipeline
// Callers cache pointers once; hot loops then write atomics without map lookups
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Count returns total metrics across all types
func (r *Registry) Count() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Line renders every metric as key=value, ordered by key across all types
// Floats print with one decimal, empty strings as "-"
func (r *Registry) Line() string {
	pairs := make([]string, 0, r.Count())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		pairs = append(pairs, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		pairs = append(pairs, fmt.Sprintf("%s=%.1f", k, v.Get()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		s := v.Load()
		if s == "" {
			s = "-"
		}
		pairs = append(pairs, k+"="+s)
	})
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
