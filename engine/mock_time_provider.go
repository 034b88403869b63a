package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven clock for deterministic countdown tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider creates a clock stopped at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward, negative durations move it back
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// SetRemaining places the clock so that target is remaining away.
// A negative remaining puts the clock past the target
func (m *MockTimeProvider) SetRemaining(target Target, remaining time.Duration) {
	m.SetTime(target.Time().Add(-remaining))
}
