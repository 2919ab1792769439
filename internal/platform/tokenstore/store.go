// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

/*
Package tokenstore persists the single bearer token that constitutes all of
the client's durable state.

It exposes a small key-value contract with three backends:

  - File: a 0600 file in the user's config directory (the default).
  - Memory: process-local, used in tests and non-persistent mode.
  - Redis: a shared well-known key for sessions that span hosts.

Absence is not an error: Get returns an empty token, and Clear on an already
empty store is a no-op, which keeps logout idempotent.
*/
package tokenstore

import "context"

// Store is the durable home of the bearer token.
type Store interface {
	// Get returns the persisted token, or "" when none is stored.
	Get(ctx context.Context) (string, error)

	// Set persists token, replacing any previous value.
	Set(ctx context.Context, token string) error

	// Clear removes the persisted token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
