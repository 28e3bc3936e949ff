package status

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
)

// Metric keys written by the board and the cascade resolver
const (
	KeySwaps          = "board.swaps"
	KeySessions       = "board.sessions"
	KeyMode           = "board.mode"
	KeyCascadeRuns    = "cascade.runs"
	KeyCascadeRounds  = "cascade.rounds"
	KeyCascadeCombos  = "cascade.combos"
	KeyCascadeRemoved = "cascade.removed"
	KeyCascadeBusy    = "cascade.busy"
	KeyCascadeState   = "cascade.state"
	KeyTickLoad       = "engine.tick_ms"
	KeyAudioCues      = "audio.cues"
)

// Registry is the central metrics facade
// Producers cache pointers during init; update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a plain map for encoding
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// Summary renders every metric as space-separated key=value pairs in key order
func (r *Registry) Summary() string {
	snap := r.Snapshot()
	parts := make([]string, 0, len(snap))
	for _, k := range slices.Sorted(maps.Keys(snap)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, snap[k]))
	}
	return strings.Join(parts, " ")
}
