package engine

import (
	"testing"
	"time"
)

func TestStepperAccumulates(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := NewStepper(50, clock) // 20ms steps

	tests := []struct {
		advance time.Duration
		want    int
	}{
		{0, 0},
		{10 * time.Millisecond, 0},
		{10 * time.Millisecond, 1},
		{45 * time.Millisecond, 2},
		{15 * time.Millisecond, 1}, // 5ms carried over
		{time.Second, maxStepsPerFrame},
	}

	for i, tt := range tests {
		clock.Advance(tt.advance)
		if got := s.Advance(); got != tt.want {
			t.Errorf("Step %d: expected %d steps, got %d", i, tt.want, got)
		}
	}
}

func TestStepperReset(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := NewStepper(60, clock)

	clock.Advance(10 * time.Second)
	s.Reset()
	if got := s.Advance(); got != 0 {
		t.Errorf("Expected paused time dropped, got %d steps", got)
	}
}

func TestStepperDefaultStep(t *testing.T) {
	s := NewStepper(60, MonotonicTimeProvider{})
	if s.Step() != 16666666*time.Nanosecond {
		t.Errorf("Expected 16.67ms step, got %v", s.Step())
	}
	if NewStepper(0, MonotonicTimeProvider{}).Step() != time.Second {
		t.Errorf("Expected fps clamped to 1")
	}
}
