package common

import "errors"

var (
	// ErrNotFound is returned by repositories and stores for absent keys.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken marks a malformed bearer token.
	ErrInvalidToken = errors.New("invalid token")
)
