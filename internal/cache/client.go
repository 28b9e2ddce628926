package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/livecard/larkstream/internal/adapter"
	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/models"
)

// clientCacheCapacity bounds the number of live client handles. The cache is
// small on purpose; a linear eviction scan is fine at this scale.
const clientCacheCapacity = 50

type clientEntry struct {
	client     *adapter.CardClient
	creds      models.Credentials
	lastAccess time.Time
}

// ClientCache maps account ids to reusable API client handles. A hit requires
// an exact credential match for the account; rotated credentials force a
// fresh client so a stale secret is never silently reused. At capacity the
// entry with the oldest access time is evicted before insertion.
type ClientCache struct {
	tokens  adapter.TokenSource
	timeout time.Duration
	logger  *logger.Logger

	mu      sync.Mutex
	entries map[string]*clientEntry

	now func() time.Time
}

// NewClientCache constructs an empty client cache. tokens is handed to every
// constructed client; timeout bounds the clients' outbound requests.
func NewClientCache(tokens adapter.TokenSource, timeout time.Duration, log *logger.Logger) *ClientCache {
	return &ClientCache{
		tokens:  tokens,
		timeout: timeout,
		logger:  log,
		entries: make(map[string]*clientEntry),
		now:     time.Now,
	}
}

// GetOrCreate returns the cached client for accountID when its credentials
// match exactly, refreshing the access timestamp. Otherwise it constructs a
// client bound to the resolved domain of creds, evicting the least-recently
// accessed entry first if the cache is full.
//
// Incomplete credentials fail with [ErrMissingCredentials] naming the
// account; nothing is cached in that case.
func (c *ClientCache) GetOrCreate(accountID string, creds models.Credentials) (*adapter.CardClient, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("%w: account %q", ErrMissingCredentials, accountID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[accountID]; ok && entry.creds == creds {
		entry.lastAccess = c.now()
		return entry.client, nil
	}

	if len(c.entries) >= clientCacheCapacity {
		c.evictOldestLocked()
	}

	client := adapter.NewCardClient(creds, c.tokens, c.timeout, c.logger.WithSession(accountID))
	c.entries[accountID] = &clientEntry{
		client:     client,
		creds:      creds,
		lastAccess: c.now(),
	}

	c.logger.Debug().Str("account_id", accountID).Int("size", len(c.entries)).Msg("client created")
	return client, nil
}

// Evict drops the cached client for accountID, if any. Non-failing.
func (c *ClientCache) Evict(accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, accountID)
}

// Clear drops every cached client. Non-failing.
func (c *ClientCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*clientEntry)
}

// Len returns the number of cached clients. Exposed for observability.
func (c *ClientCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldestLocked removes the entry with the oldest access time. Callers
// must hold c.mu and guarantee the cache is non-empty.
func (c *ClientCache) evictOldestLocked() {
	var oldestKey string
	var oldestAccess time.Time

	first := true
	for key, entry := range c.entries {
		if first || entry.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			first = false
		}
	}

	delete(c.entries, oldestKey)
	c.logger.Debug().Str("account_id", oldestKey).Msg("client evicted")
}
