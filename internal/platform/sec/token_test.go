// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package sec_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serista/serista/internal/platform/sec"
)

// mint builds a signed HS256 token with the provided claims.
func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// rawToken assembles header.payload.signature from pre-encoded segments so
// tests can produce structurally broken payloads.
func rawToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + payload + ".sig"
}

/*
TestExpiresAt_Malformed verifies that every structurally broken token decodes
to "expiry unknown" without panicking.
*/
func TestExpiresAt_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no_dots", "not-a-token"},
		{"two_parts", "aaaa.bbbb"},
		{"four_parts", "a.b.c.d"},
		{"payload_not_base64", rawToken("!!!not-base64!!!")},
		{"payload_not_json", rawToken(base64.RawURLEncoding.EncodeToString([]byte("plain text")))},
		{"missing_exp", mint(t, jwt.MapClaims{"sub": "user-1"})},
		{"exp_not_numeric", rawToken(base64.RawURLEncoding.EncodeToString([]byte(`{"exp":"tomorrow"}`)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiry, ok := sec.ExpiresAt(tt.token)
			assert.False(t, ok)
			assert.True(t, expiry.IsZero())
		})
	}
}

/*
TestExpiresAt_Valid verifies the decoded instant matches the minted claim.
*/
func TestExpiresAt_Valid(t *testing.T) {
	expected := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mint(t, jwt.MapClaims{"exp": expected.Unix(), "sub": "user-1"})

	expiry, ok := sec.ExpiresAt(token)
	require.True(t, ok)
	assert.True(t, expiry.Equal(expected))
}

/*
TestExpiresAt_PastExpiry verifies that already-expired tokens still decode;
expiry enforcement belongs to the callers, not the codec.
*/
func TestExpiresAt_PastExpiry(t *testing.T) {
	expected := time.Now().Add(-time.Hour).Truncate(time.Second)
	token := mint(t, jwt.MapClaims{"exp": expected.Unix()})

	expiry, ok := sec.ExpiresAt(token)
	require.True(t, ok)
	assert.True(t, expiry.Equal(expected))
}

func TestExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{"future_exp", mint(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), false},
		{"past_exp", mint(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true},
		{"no_exp", mint(t, jwt.MapClaims{"sub": "u"}), false},
		{"garbage", "garbage", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, sec.Expired(tt.token, now))
		})
	}
}

func TestRemaining(t *testing.T) {
	now := time.Now()

	remaining, ok := sec.Remaining(mint(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), now)
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 1.0)

	remaining, ok = sec.Remaining(mint(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}), now)
	require.True(t, ok)
	assert.Negative(t, remaining)

	_, ok = sec.Remaining("an.opaque.credential", now)
	assert.False(t, ok)
}
