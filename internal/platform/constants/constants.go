// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

/*
Package constants provides centralized, immutable values for the entire client.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Transport Timing: dial/response/idle timeouts for the outbound HTTP client.
  - Rate Limiting: courtesy limits applied to outbound API traffic.
  - Storage: the single well-known key/path under which the bearer token lives.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "serista"
	AppVersion = "0.1.0-dev"
)

// # Transport Timing

const (
	// DefaultDialTimeout is the maximum duration for establishing a TCP connection.
	DefaultDialTimeout = 10 * time.Second

	// DefaultResponseHeaderTimeout is the maximum wait for the first response byte.
	DefaultResponseHeaderTimeout = 15 * time.Second

	// DefaultIdleConnTimeout is how long idle keep-alive connections are retained.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultRequestTimeout is the deadline for one full request/response cycle.
	DefaultRequestTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second the client allows itself.
	// Zero disables the limiter entirely.
	DefaultRateLimitRPS = 0.0

	// DefaultRateLimitBurst is the maximum burst allowed when a limit is set.
	DefaultRateLimitBurst = 10
)

// # Token Storage

const (
	// TokenFileName is the well-known file holding the persisted bearer token.
	TokenFileName = "token"

	// RedisTokenKey is the well-known Redis key for the redis token store.
	RedisTokenKey = "serista:session:token"
)

// # HTTP

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)

// # JSON Field Identifiers

const (
	FieldMessage = "message"
	FieldToken   = "token"
	FieldData    = "data"
	FieldSeries  = "series"
	FieldResult  = "result"
)
