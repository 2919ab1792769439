// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/serista/serista/internal/platform/transport"
	"github.com/serista/serista/internal/platform/validate"
)

// Client implements the typed auth endpoints on top of the request mediator.
//
// # Error Policy
//
// The client adds no error handling of its own: mediator failures pass
// through untouched. Its only extra duty is input validation — invalid
// credentials must never reach the wire.
type Client struct {
	mediator *transport.Mediator
}

// NewClient constructs an auth [Client] around the shared mediator.
func NewClient(mediator *transport.Mediator) *Client {
	return &Client{mediator: mediator}
}

// registerRequest is the JSON payload for POST /api/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register submits a new account.
//
// # Business Rules
//   - Name must have at least 2 characters.
//   - Email must be a valid address.
//   - Password must be strong (8+ chars, upper, lower, digit, symbol).
//
// Registration does not authenticate; callers redirect to login on success.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	v := &validate.Validator{}
	err := v.
		PersonName("name", input.Name).
		Email("email", input.Email).
		StrongPassword("password", input.Password).
		Err()
	if err != nil {
		return err
	}

	_, err = c.mediator.Send(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/api/register",
		Body: registerRequest{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		},
	})
	return err
}

// loginRequest is the JSON payload for POST /api/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	v := &validate.Validator{}
	if err := v.Email("email", email).Required("password", password).Err(); err != nil {
		return "", err
	}

	resp, err := c.mediator.Send(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/api/login",
		Body:   loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("account: login response carried no token")
	}
	return out.Token, nil
}

// Me fetches the profile belonging to the stored token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.mediator.Send(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/api/protected",
	})
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := resp.Decode(user); err != nil {
		return nil, err
	}
	return user, nil
}
