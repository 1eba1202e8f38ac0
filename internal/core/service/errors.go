package service

import "errors"

var (
	// ErrInvalidCredentials is returned when a login password does not
	// match the stored hash. No state changes when this is returned.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPostNotFound is returned when a post lookup yields no record.
	ErrPostNotFound = errors.New("post not found")
)
