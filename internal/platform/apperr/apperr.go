// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

/*
Package apperr defines the centralized error handling framework for Serista.

It provides a rich error type that bridges the gap between low-level transport
failures and the messages the view layer presents to the user.

Architecture:

  - AppError: A struct containing a machine-readable Code and user-friendly message.
  - Taxonomy: NETWORK_ERROR, TOKEN_EXPIRED, HTTP_ERROR, VALIDATION_ERROR.
  - Mapping: HTTP_ERROR carries the backend status and decoded response body.

Every error that leaves the transport or domain-client layer is wrapped as an
[AppError] to ensure the view layer renders consistent failures.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNetwork      = "NETWORK_ERROR"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeHTTP         = "HTTP_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
)

// AppError is the canonical error type for the Serista client.
//
// It carries a machine-readable code, a human-readable message, and — for
// errors produced by a backend response — the HTTP status and decoded body.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "TOKEN_EXPIRED").
	Code string `json:"code"`
	// Message is a human-readable description suitable for the view layer.
	Message string `json:"error"`
	// HTTPStatus is the backend response status, or 0 when no response exists.
	HTTPStatus int `json:"-"`
	// Body is the decoded response body (JSON object, raw text, or nil).
	Body any `json:"-"`
	// Cause is the underlying error, used for logging and errors.Is chains.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR failures.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the human-readable message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Constructors

// Network wraps a transport-level failure (DNS, connection refused, TLS).
// The resolved URL is embedded in the message so logs identify the target.
func Network(url string, cause error) *AppError {
	return &AppError{
		Code:    CodeNetwork,
		Message: fmt.Sprintf("network error when fetching %s: %v", url, cause),
		Cause:   cause,
	}
}

// TokenExpired creates the error raised when the stored bearer token has
// passed its embedded expiry before any network call was made.
func TokenExpired() *AppError {
	return &AppError{
		Code:       CodeTokenExpired,
		Message:    "session token expired",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// HTTP creates an error for a non-2xx backend response.
//
// The message is drawn from the body's "message" field when the body is a
// JSON object carrying one, falling back to the standard status text.
func HTTP(status int, body any) *AppError {
	message := http.StatusText(status)
	if obj, ok := body.(map[string]any); ok {
		if m, ok := obj["message"].(string); ok && m != "" {
			message = m
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &AppError{
		Code:       CodeHTTP,
		Message:    message,
		HTTPStatus: status,
		Body:       body,
	}
}

// ValidationError creates a client-side input validation failure with
// optional per-field details. No network call is associated with it.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Details: details,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsTokenExpired reports whether err represents a locally detected expiry.
func IsTokenExpired(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == CodeTokenExpired
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == CodeNetwork
}

// StatusOf returns the backend status carried by err, or 0 when none exists.
func StatusOf(err error) int {
	if ae := As(err); ae != nil {
		return ae.HTTPStatus
	}
	return 0
}
