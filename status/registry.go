// Package status holds live run counters written by the simulation and read
// by sinks and progress reporting, possibly from other goroutines
package status

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Metric names written by the simulation
const (
	Tick      = "tick"
	Frames    = "frames"
	Recycled  = "recycled"
	Artifacts = "artifacts"
	Changes   = "bg.changes"
	Effects   = "effects"
	Stalls    = "stalls"

	Background = "bg.active"
	Active     = "effect.active"

	Throughput = "fps.render"
)

// MaxLabelLen caps label length so status lines stay on one terminal row
const MaxLabelLen = 24

// Registry groups the metric tables of one run
type Registry struct {
	Counters *Table[atomic.Int64]
	Rates    *Table[Rate]
	Labels   *Table[Label]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewTable[atomic.Int64](),
		Rates:    NewTable[Rate](),
		Labels:   NewTable[Label](),
	}
}

// Len counts metrics across tables
func (r *Registry) Len() int {
	return r.Counters.Len() + r.Rates.Len() + r.Labels.Len()
}

// Report renders every metric as key=value, counters first, then rates and labels
func (r *Registry) Report() []string {
	out := make([]string, 0, r.Len())
	r.Counters.Each(func(k string, v *atomic.Int64) {
		out = append(out, k+"="+strconv.FormatInt(v.Load(), 10))
	})
	r.Rates.Each(func(k string, v *Rate) {
		out = append(out, fmt.Sprintf("%s=%.1f", k, v.Get()))
	})
	r.Labels.Each(func(k string, v *Label) {
		if s := v.Load(); s != "" {
			out = append(out, k+"="+s)
		}
	})
	return out
}

// Rate is an atomic float64; the zero value reads 0
type Rate struct {
	bits atomic.Uint64
}

func (f *Rate) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *Rate) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Label is an atomic short string; the zero value reads empty
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncated to MaxLabelLen bytes
func (l *Label) Store(val string) {
	if len(val) > MaxLabelLen {
		val = val[:MaxLabelLen]
	}
	l.ptr.Store(&val)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
