// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Package sec provides client-side inspection of bearer tokens.
//
// # Architecture
//
// The client treats the token as an opaque credential: it never verifies the
// signature (that is the backend's job) and only reads the embedded 'exp'
// claim so the session layer can schedule proactive logout. Every decode
// failure collapses to "expiry unknown" — a malformed token is neither
// rejected nor scheduled; the server's eventual 401 remains authoritative.
package sec

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parser skips claim validation entirely; we only want the raw payload.
var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ExpiresAt decodes the 'exp' claim of a three-part JWS without verifying
// its signature.
//
// # Returns
//   - The expiry instant and true when the token splits into exactly three
//     parts, the payload is valid base64url JSON, and 'exp' is numeric.
//   - The zero time and false for every other input, including "".
//
// ExpiresAt is pure and never panics.
func ExpiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}

	return expiry.Time, true
}

// Expired reports whether token carries a decodable 'exp' claim that is at
// or before now. Tokens with an unknown expiry are never considered expired
// locally.
func Expired(token string, now time.Time) bool {
	expiry, ok := ExpiresAt(token)
	return ok && !expiry.After(now)
}

// Remaining returns the time left until token's embedded expiry.
// The second return is false when no expiry can be decoded. A negative
// duration means the token is already past its expiry.
func Remaining(token string, now time.Time) (time.Duration, bool) {
	expiry, ok := ExpiresAt(token)
	if !ok {
		return 0, false
	}
	return expiry.Sub(now), true
}
