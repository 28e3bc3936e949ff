package engine

import (
	"sync/atomic"
	"time"
)

// Clock is the time source the loop measures ticks with
type Clock interface {
	Now() time.Time
}

// TimeProvider reads the system clock
type TimeProvider struct{}

func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually stepped clock for tests
// The base instant is fixed at construction; SetTime and Advance move an offset
type MockTimeProvider struct {
	base   time.Time
	offset atomic.Int64
}

// NewMockTimeProvider creates a clock reading startTime until moved
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{base: startTime}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.base.Add(time.Duration(m.offset.Load()))
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.base)))
}

// Advance moves the clock forward by d and returns the new reading
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	return m.base.Add(time.Duration(m.offset.Add(int64(d))))
}
