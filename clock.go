// clock.go
package main

import (
	"sync"
	"time"
)

// Clock abstracts the current time so pacing and audit timestamps can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually advanced Clock, safe to share between update workers.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{currentTime: start}
}

func (mc *MockClock) Now() time.Time {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.currentTime
}

// Advance moves the current time forward by d.
func (mc *MockClock) Advance(d time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.currentTime = mc.currentTime.Add(d)
}
