package client

import "errors"

var (
	// ErrNotAuthenticated is returned when a call requiring a session is made
	// before Login.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnauthorized is returned when the server rejects the credentials and
	// the refresh flow could not recover.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired is returned when the refresh token itself was rejected
	// and the stored session was cleared.
	ErrSessionExpired = errors.New("session expired")
)
