// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

// Package account owns the authenticated identity: the typed auth endpoints
// (register, login, who-am-i) and the [Session] store that tracks the token
// lifecycle, schedules proactive logout, and reacts to expiry signals.
package account

// User is the authenticated profile returned by the backend.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// State identifies where the session is in its lifecycle.
type State string

const (
	// StateAnonymous means no usable token is held.
	StateAnonymous State = "anonymous"

	// StateAuthenticating means a login or profile fetch is in progress.
	StateAuthenticating State = "authenticating"

	// StateAuthenticated means a token is held and the profile is populated.
	StateAuthenticated State = "authenticated"
)

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}
