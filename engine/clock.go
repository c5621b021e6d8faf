package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the frame loop
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic component
type MonotonicTimeProvider struct{}

// Now returns the current time with monotonic clock reading
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock starting at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// maxStepsPerFrame bounds catch-up after a stall so a slow frame cannot spiral
const maxStepsPerFrame = 8

// Stepper converts elapsed wall time into a whole number of fixed update steps
// The remainder carries over to the next frame
type Stepper struct {
	step  time.Duration
	acc   time.Duration
	last  time.Time
	clock TimeProvider
}

// NewStepper creates a stepper running fps updates per second
func NewStepper(fps int, clock TimeProvider) *Stepper {
	if fps < 1 {
		fps = 1
	}
	return &Stepper{
		step:  time.Second / time.Duration(fps),
		last:  clock.Now(),
		clock: clock,
	}
}

// Step returns the fixed update interval
func (s *Stepper) Step() time.Duration { return s.step }

// Advance accumulates time since the previous call and returns how many steps are due
func (s *Stepper) Advance() int {
	now := s.clock.Now()
	s.acc += now.Sub(s.last)
	s.last = now

	n := int(s.acc / s.step)
	s.acc -= time.Duration(n) * s.step
	if n > maxStepsPerFrame {
		n = maxStepsPerFrame
	}
	return n
}

// Reset drops accumulated time, used on resume so a pause does not replay as a burst of steps
func (s *Stepper) Reset() {
	s.acc = 0
	s.last = s.clock.Now()
}
