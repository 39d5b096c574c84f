// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across the API client, session and dashboard layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a client-side precondition failure;
	// such errors never reach the network layer.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates a rejected login or register attempt
	// (401/400 from the auth endpoints). Session state is untouched.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired indicates a 401 on an authenticated call. The
	// persisted session is cleared and the user is sent back to login.
	ErrSessionExpired = errors.New("session expired")

	// ErrOffline indicates a connectivity failure: no response at all.
	ErrOffline = errors.New("server unreachable")
)
