// Package common defines shared constants and sentinel errors used across
// the DMS client and the development server. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Remote / gateway errors.
	ErrorNotFound     = errors.New("not found")
	ErrorUnavailable  = errors.New("server unavailable")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrInvalidPayload marks a response that decoded but failed schema
	// validation (missing id, unknown enum value, etc.).
	ErrInvalidPayload = errors.New("invalid payload")

	// Session persistence errors.
	ErrMalformedSession = errors.New("malformed persisted session")
	ErrTokenExpired     = errors.New("token expired")
)
