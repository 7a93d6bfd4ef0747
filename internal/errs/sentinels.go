// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken indicates the users_username_unique constraint fired.
	ErrUsernameTaken = errors.New("username taken")

	// ErrEmailTaken indicates the users_email_unique constraint fired.
	ErrEmailTaken = errors.New("email taken")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
