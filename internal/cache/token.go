package cache

import (
	"context"
	"sync"
	"time"

	"github.com/livecard/larkstream/internal/adapter"
	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/models"
)

const (
	// tokenFreshnessMargin is the minimum remaining validity a cached token
	// must have to be returned. Anything closer to expiry is re-exchanged.
	tokenFreshnessMargin = 60 * time.Second

	// sweepInterval rate-limits the opportunistic expired-entry sweep that
	// runs before lookups. Bounds multi-tenant growth without a background
	// scheduler.
	sweepInterval = 5 * time.Minute
)

// TokenCache maps application credentials to short-lived tenant tokens,
// keyed by "{domain}|{appId}". It implements [adapter.TokenSource].
type TokenCache struct {
	exchanger adapter.Exchanger
	logger    *logger.Logger

	mu        sync.Mutex
	entries   map[string]models.TenantToken
	lastSweep time.Time

	now func() time.Time
}

// NewTokenCache constructs an empty credential cache backed by exchanger.
func NewTokenCache(exchanger adapter.Exchanger, log *logger.Logger) *TokenCache {
	return &TokenCache{
		exchanger: exchanger,
		logger:    log,
		entries:   make(map[string]models.TenantToken),
		now:       time.Now,
	}
}

// Token implements [adapter.TokenSource]. It returns a cached token with at
// least 60s of remaining validity, or performs a fresh exchange and caches
// the result. Exchange failures propagate unchanged and are never retried
// here.
//
// Two goroutines missing the same key concurrently may both exchange; the
// later result wins, which is harmless since both tokens are valid.
func (c *TokenCache) Token(ctx context.Context, creds models.Credentials) (string, error) {
	key := creds.CacheKey()

	c.mu.Lock()
	c.sweepLocked()
	if entry, ok := c.entries[key]; ok && entry.FreshFor(c.now(), tokenFreshnessMargin) {
		c.mu.Unlock()
		return entry.Value, nil
	}
	c.mu.Unlock()

	// Exchange outside the lock so a slow auth endpoint does not stall
	// lookups for other tenants.
	token, err := c.exchanger.Exchange(ctx, creds)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = token
	c.mu.Unlock()

	c.logger.Debug().Str("key", key).Msg("token cached")
	return token.Value, nil
}

// Len returns the number of cached entries, live or not. Exposed for
// observability.
func (c *TokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweepLocked removes entries whose expiry has already passed. Rate-limited
// to once per sweepInterval; callers must hold c.mu.
func (c *TokenCache) sweepLocked() {
	now := c.now()
	if now.Sub(c.lastSweep) < sweepInterval {
		return
	}
	c.lastSweep = now

	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}
}
