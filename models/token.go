package models

import "time"

// TenantToken is one short-lived access token obtained through the
// application-credential exchange, together with its absolute expiry.
type TenantToken struct {
	// Value is the opaque bearer token string.
	Value string

	// ExpiresAt is the instant the token stops being accepted by the remote
	// surface, computed from the server-reported TTL at exchange time.
	ExpiresAt time.Time
}

// FreshFor reports whether the token is still valid at instant now with at
// least margin of remaining validity. The credential cache never returns a
// token that fails this check.
func (t TenantToken) FreshFor(now time.Time, margin time.Duration) bool {
	return t.Value != "" && now.Add(margin).Before(t.ExpiresAt)
}

// Expired reports whether the token's validity has fully elapsed at now.
// Used by the cache sweep; near-expiry tokens are not expired yet.
func (t TenantToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
