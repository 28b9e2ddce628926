// Package app wires the process-scoped runtime: one credential cache, one
// client cache and one logger shared by every streaming session the process
// opens. Multiple isolated App values may coexist, each with its own caches.
package app

import (
	"fmt"
	"time"

	"github.com/livecard/larkstream/internal/adapter"
	"github.com/livecard/larkstream/internal/cache"
	"github.com/livecard/larkstream/internal/config"
	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/internal/session"
	"github.com/livecard/larkstream/models"
)

// App holds the shared infrastructure behind streaming sessions. Sessions
// created through one App reuse its tenant tokens and API clients.
type App struct {
	logger   *logger.Logger
	throttle time.Duration
	tokens   *cache.TokenCache
	clients  *cache.ClientCache
}

// New builds an App from validated configuration. The request timeout applies
// to every outbound call, token exchanges included.
func New(cfg *config.StructuredConfig, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}

	exchanger := adapter.NewExchanger(cfg.Adapter.RequestTimeout, log)
	tokens := cache.NewTokenCache(exchanger, log)
	clients := cache.NewClientCache(tokens, cfg.Adapter.RequestTimeout, log)

	return &App{
		logger:   log,
		throttle: cfg.Stream.UpdateThrottle,
		tokens:   tokens,
		clients:  clients,
	}
}

// Session returns a new unstarted streaming session for the account,
// reusing a cached API client when the credentials still match. The returned
// session carries the App's throttle and a child logger tagged with the
// account id; both can be overridden through opts.
func (a *App) Session(accountID string, creds models.Credentials, opts session.Options) (*session.Session, error) {
	client, err := a.clients.GetOrCreate(accountID, creds)
	if err != nil {
		return nil, fmt.Errorf("session for account %s: %w", accountID, err)
	}

	if opts.Throttle <= 0 {
		opts.Throttle = a.throttle
	}
	if opts.Logger == nil {
		opts.Logger = a.logger.WithSession(accountID)
	}

	return session.New(client, opts), nil
}

// EvictClient drops the account's cached API client, forcing the next
// Session call to rebuild it. Tenant tokens are unaffected.
func (a *App) EvictClient(accountID string) {
	a.clients.Evict(accountID)
}

// Stats reports the current cache sizes.
func (a *App) Stats() (tokens, clients int) {
	return a.tokens.Len(), a.clients.Len()
}
