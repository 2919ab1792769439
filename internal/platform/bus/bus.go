// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

/*
Package bus provides the in-process publish/subscribe channel used for
cross-cutting client signals.

Two signal families flow through it:

  - Token expiry: raised by the proactive timer or by a backend 401; the
    session layer owns the single handler that tears the session down.
  - Request lifecycle: started/ended pairs emitted by the transport layer
    and consumed by the busy indicator.

The bus is an explicit injected object, never an ambient global, so the
session store and the request mediator stay testable in isolation.
*/
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Topic identifies a signal family on the bus.
type Topic string

const (
	// TopicTokenExpired is raised when the bearer token is no longer usable,
	// either detected locally (timer, pre-flight check) or remotely (401).
	TopicTokenExpired Topic = "session.token_expired"

	// TopicRequestStarted fires before any network activity for a request.
	TopicRequestStarted Topic = "request.started"

	// TopicRequestEnded fires exactly once per started request, on every
	// exit path.
	TopicRequestEnded Topic = "request.ended"
)

// RequestEvent is the payload carried by request lifecycle notifications.
// Started/ended pairs for the same request share the same ID.
type RequestEvent struct {
	ID     uuid.UUID
	Method string
	URL    string
}

// Handler processes one published event. The payload is nil for topics that
// carry no payload (token expiry).
type Handler func(payload any)

// Bus dispatches events to subscribed handlers.
//
// # Concurrency
//
// Bus is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine, so they must not block.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[Topic]map[int]Handler
}

// New creates an empty event bus.
func New() *Bus {
	return &Bus{handlers: make(map[Topic]map[int]Handler)}
}

// Subscribe registers handler for topic and returns a cancel function that
// removes the subscription. Cancel is idempotent.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[topic][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

// Publish dispatches payload to every handler subscribed to topic.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	subscribed := make([]Handler, 0, len(b.handlers[topic]))
	for _, h := range b.handlers[topic] {
		subscribed = append(subscribed, h)
	}
	b.mu.RUnlock()

	// Dispatch outside the lock so a handler may subscribe or cancel.
	for _, h := range subscribed {
		h(payload)
	}
}
