package cache

import "errors"

var (
	// ErrMissingCredentials indicates an account was configured without an
	// app id or app secret. Raised synchronously; nothing is cached.
	ErrMissingCredentials = errors.New("missing app credentials")
)
