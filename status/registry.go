// @lixen: #focus{sys[engine,stats]}
package status

import (
	"math"
	"sync/atomic"
)

// Metric keys recorded by the frame loop
const (
	Frames     = "frames"
	Cells      = "cells_repainted"
	Triangles  = "triangles"
	FPS        = "fps"
	SceneIndex = "scene"
)

// Gauge is a float64 safe to read from any goroutine
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.bits.Load()) }

// Smooth folds sample into an exponential moving average with weight alpha
// The first sample seeds the average
func (g *Gauge) Smooth(sample, alpha float64) float64 {
	for {
		old := g.bits.Load()
		prev := math.Float64frombits(old)
		next := sample
		if prev != 0 {
			next = prev + alpha*(sample-prev)
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Registry holds the counters and gauges a running engine publishes
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// LogAttrs flattens every metric into slog key-value pairs, counters first
func (r *Registry) LogAttrs() []any {
	attrs := make([]any, 0, 2*(r.Counters.Count()+r.Gauges.Count()))
	r.Counters.Range(func(k string, v *atomic.Int64) {
		attrs = append(attrs, k, v.Load())
	})
	r.Gauges.Range(func(k string, v *Gauge) {
		attrs = append(attrs, k, v.Get())
	})
	return attrs
}
