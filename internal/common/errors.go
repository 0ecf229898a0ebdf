// Package common contains shared constants and sentinel errors used across
// ZapDesk client components. Callers should match these with errors.Is.
package common

import "errors"

var (
	// Transport-level errors (connection refused, timeouts, bad payloads).
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors (missing, expired or rejected credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
