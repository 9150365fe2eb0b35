// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/transport layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The two cases are deliberately merged to prevent username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrValidation indicates a malformed or out-of-bounds request body.
	ErrValidation = errors.New("validation failed")

	// ErrTokenInvalid indicates a token with a bad signature or unparseable form.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates a well-formed, correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
