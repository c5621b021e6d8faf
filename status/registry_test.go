package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapStablePointers(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("frames").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := m.Get("frames").Load(); got != 800 {
		t.Errorf("Expected 800, got %d", got)
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 key, got %d", m.Count())
	}
}

func TestGaugeSmooth(t *testing.T) {
	var g Gauge
	if got := g.Smooth(60, 0.1); got != 60 {
		t.Errorf("Expected first sample to seed, got %f", got)
	}
	if got := g.Smooth(30, 0.1); got != 57 {
		t.Errorf("Expected 57, got %f", got)
	}
	g.Set(2.5)
	if g.Get() != 2.5 {
		t.Errorf("Expected 2.5, got %f", g.Get())
	}
}

func TestRegistryLogAttrs(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get(Triangles).Store(12)
	r.Counters.Get(Frames).Store(3)
	r.Gauges.Get(FPS).Set(59.5)

	attrs := r.LogAttrs()
	want := []any{Frames, int64(3), Triangles, int64(12), FPS, 59.5}
	if len(attrs) != len(want) {
		t.Fatalf("Expected %v, got %v", want, attrs)
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, attrs[i])
		}
	}
}
