package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingAppCredentials indicates that the application id or secret
	// is absent. Sessions cannot be constructed without both.
	ErrMissingAppCredentials = errors.New("missing app credentials")
	// ErrInvalidStreamConfigs indicates invalid streaming settings
	// (for example, a negative throttle window).
	ErrInvalidStreamConfigs = errors.New("invalid stream configuration")
	// ErrInvalidAdapterConfigs indicates invalid outbound transport settings
	// (for example, a negative request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
