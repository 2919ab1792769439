// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package account

import (
	"context"
	"log/slog"
	"sync"

	"github.com/serista/serista/internal/platform/bus"
	"github.com/serista/serista/internal/platform/sched"
	"github.com/serista/serista/internal/platform/sec"
	"github.com/serista/serista/internal/platform/tokenstore"
)

// Session is the single source of truth for "am I logged in and as whom".
//
// # State Machine
//
//	Anonymous → Authenticating → Authenticated → Anonymous
//
// Anonymous is re-entered on logout, on a failed login, or on expiry.
// Expiry reaches the session through one shared signal regardless of how it
// was detected: the proactive timer, the mediator's pre-flight check, or a
// backend 401 all publish [bus.TopicTokenExpired], and one handler tears the
// session down.
//
// # Concurrency
//
// Session is safe for concurrent use; all transitions happen under an
// internal mutex. The expiry timer is a single one-shot schedule per token —
// replacing the token always cancels the previous timer before arming a new
// one, so a stale timer can never expire a successor token.
type Session struct {
	client *Client
	store  tokenstore.Store
	bus    *bus.Bus
	clock  sched.Clock
	log    *slog.Logger

	mu        sync.Mutex
	state     State
	user      *User
	timer     sched.Timer
	onExpired func()

	cancelSub func()
}

// NewSession wires a session over its collaborators and attaches the expiry
// handler to the bus. Call [Session.Close] to detach.
func NewSession(client *Client, store tokenstore.Store, eventBus *bus.Bus, clock sched.Clock, logger *slog.Logger) *Session {
	session := &Session{
		client: client,
		store:  store,
		bus:    eventBus,
		clock:  clock,
		log:    logger,
		state:  StateAnonymous,
	}
	session.cancelSub = eventBus.Subscribe(bus.TopicTokenExpired, func(any) {
		session.handleExpiry()
	})
	return session
}

// SetOnExpired registers the listener invoked after an expiry teardown.
// The view layer uses it to steer the user back to the login screen.
func (s *Session) SetOnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the authenticated profile, or nil outside Authenticated.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Login authenticates, persists the returned token, schedules proactive
// expiry, and populates the profile.
//
// # Failure Semantics
//
//   - A failed credential exchange returns to Anonymous with nothing
//     persisted.
//   - A failed post-login profile fetch propagates its error and returns to
//     Anonymous, but deliberately leaves the freshly persisted token in
//     place: the scheduled expiry or the next 401 will clean it up, and a
//     Resume may still recover the session.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setState(StateAuthenticating)

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.setState(StateAnonymous)
		return err
	}

	if err := s.store.Set(ctx, token); err != nil {
		s.setState(StateAnonymous)
		return err
	}
	s.scheduleExpiry(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.state = StateAnonymous
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.log.Debug("session authenticated", slog.String("email", user.Email))
	return nil
}

// Register enrolls a new account. It is stateless relative to the session:
// no token is acquired and the state does not change. Callers are expected
// to follow up with a Login.
func (s *Session) Register(ctx context.Context, input RegisterInput) error {
	return s.client.Register(ctx, input)
}

// Logout clears the persisted token, cancels any pending expiry timer, and
// returns to Anonymous. Calling it on an already anonymous session is safe.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	return s.store.Clear(ctx)
}

// Resume restores a persisted session at startup: when a token is present
// it schedules proactive expiry and fetches the profile. A failed profile
// fetch is treated identically to expiry: token and user are cleared and
// the session stays Anonymous.
func (s *Session) Resume(ctx context.Context) error {
	token, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.scheduleExpiry(token)
	s.setState(StateAuthenticating)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.log.Warn("session resume rejected", slog.Any("error", err))
		s.handleExpiry()
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
	return nil
}

// Close detaches the session from the bus and stops any pending timer.
func (s *Session) Close() {
	s.cancelSub()
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()
}

// scheduleExpiry replaces the proactive expiry schedule for token.
//
// The previous timer is always cancelled first. A token with a past expiry
// raises the signal immediately; a token without a decodable expiry
// schedules nothing and leaves enforcement to the backend's 401.
func (s *Session) scheduleExpiry(token string) {
	s.mu.Lock()
	s.stopTimerLocked()

	remaining, ok := sec.Remaining(token, s.clock.Now())
	if !ok {
		s.mu.Unlock()
		return
	}
	if remaining <= 0 {
		s.mu.Unlock()
		s.bus.Publish(bus.TopicTokenExpired, nil)
		return
	}

	s.timer = s.clock.AfterFunc(remaining, func() {
		s.bus.Publish(bus.TopicTokenExpired, nil)
	})
	s.mu.Unlock()
}

// handleExpiry is the single convergence point for local and remote expiry.
func (s *Session) handleExpiry() {
	onExpired := s.teardown()
	if onExpired != nil {
		onExpired()
	}
}

// teardown clears timer, user, token, and state, returning the registered
// expiry listener (if any) for the caller to invoke outside the lock.
func (s *Session) teardown() func() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.user = nil
	s.state = StateAnonymous
	onExpired := s.onExpired
	s.mu.Unlock()

	if err := s.store.Clear(context.Background()); err != nil {
		s.log.Warn("token store clear failed", slog.Any("error", err))
	}
	return onExpired
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// stopTimerLocked cancels the pending timer. Caller must hold s.mu.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
