// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Package sched abstracts one-shot timer scheduling behind a [Clock] so the
// session's cancel-before-reschedule invariant is verifiable without real
// time passing.
package sched

import "time"

// Timer is a scheduled one-shot callback that can be stopped.
type Timer interface {
	// Stop cancels the pending callback. Stopping an already fired or
	// already stopped timer is a no-op.
	Stop()
}

// Clock provides the current time and one-shot scheduling.
type Clock interface {
	Now() time.Time
	// AfterFunc runs fn on its own goroutine after d elapses.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real returns the wall clock backed by [time.AfterFunc].
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() { r.t.Stop() }
