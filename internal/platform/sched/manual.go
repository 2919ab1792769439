// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package sched

import (
	"sync"
	"time"
)

// Manual is a hand-driven [Clock] for tests. Scheduled callbacks fire only
// when [Manual.Advance] moves the clock past their deadline.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

// NewManual creates a manual clock anchored at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{clock: m, deadline: m.now.Add(d), fn: fn}
	m.pending = append(m.pending, timer)
	return timer
}

// Advance moves the clock forward and fires every pending callback whose
// deadline has been reached, in scheduling order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	var due []*manualTimer
	var remaining []*manualTimer
	for _, timer := range m.pending {
		if !timer.stopped && !timer.deadline.After(m.now) {
			due = append(due, timer)
		} else {
			remaining = append(remaining, timer)
		}
	}
	m.pending = remaining
	m.mu.Unlock()

	// Fire outside the lock; callbacks may schedule or stop timers.
	for _, timer := range due {
		timer.fn()
	}
}

// PendingCount returns the number of armed, unfired timers.
func (m *Manual) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, timer := range m.pending {
		if !timer.stopped {
			count++
		}
	}
	return count
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}
