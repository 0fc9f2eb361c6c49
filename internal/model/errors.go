package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on unique constraint violations.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredential is returned when a password does not match.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Token verification failures form a small taxonomy: a malformed token is
// fatal to the request, an expired token triggers the client refresh flow,
// and a superseded refresh token forces a logout.
var (
	ErrTokenMalformed  = errors.New("token malformed")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenSuperseded = errors.New("refresh token superseded")
)
