// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Package busy tracks how many API requests are currently in flight.
//
// The counter is purely observational: it feeds the view layer's loading
// overlay and has no bearing on correctness anywhere else. It tolerates any
// interleaving of started/ended pairs and never goes negative.
package busy

import (
	"sync"

	"github.com/serista/serista/internal/platform/bus"
)

// Indicator counts in-flight requests via the event bus.
type Indicator struct {
	mu    sync.Mutex
	count int

	cancelStart func()
	cancelEnd   func()
}

// NewIndicator subscribes to request lifecycle events on eventBus.
// Call [Indicator.Close] to detach.
func NewIndicator(eventBus *bus.Bus) *Indicator {
	indicator := &Indicator{}
	indicator.cancelStart = eventBus.Subscribe(bus.TopicRequestStarted, func(any) {
		indicator.mu.Lock()
		indicator.count++
		indicator.mu.Unlock()
	})
	indicator.cancelEnd = eventBus.Subscribe(bus.TopicRequestEnded, func(any) {
		indicator.mu.Lock()
		// Floor at zero: an unmatched ended event must not corrupt the count.
		if indicator.count > 0 {
			indicator.count--
		}
		indicator.mu.Unlock()
	})
	return indicator
}

// Count returns the number of requests currently in flight.
func (i *Indicator) Count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count
}

// Active reports whether at least one request is in flight.
func (i *Indicator) Active() bool {
	return i.Count() > 0
}

// Close detaches the indicator from the bus. Safe to call more than once.
func (i *Indicator) Close() {
	i.cancelStart()
	i.cancelEnd()
}
