package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/internal/mock"
	"github.com/livecard/larkstream/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestTokenCache wires a TokenCache to a mock exchanger and a manually
// advanced clock.
func newTestTokenCache(t *testing.T, ctrl *gomock.Controller) (*TokenCache, *mock.MockExchanger, *time.Time) {
	t.Helper()
	exchanger := mock.NewMockExchanger(ctrl)
	cache := NewTokenCache(exchanger, logger.Nop())

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }
	return cache, exchanger, &clock
}

func testCreds() models.Credentials {
	return models.Credentials{AppID: "cli_abc", AppSecret: "shh", Domain: "feishu"}
}

func TestTokenCache_MissExchangesAndCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, clock := newTestTokenCache(t, ctrl)
	ctx := context.Background()
	creds := testCreds()

	exchanger.EXPECT().Exchange(ctx, creds).Return(models.TenantToken{
		Value:     "t-1",
		ExpiresAt: clock.Add(2 * time.Hour),
	}, nil).Times(1)

	// First call misses and exchanges.
	token, err := cache.Token(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t-1", token)

	// Second call hits; no further exchange expected.
	token, err = cache.Token(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t-1", token)
	assert.Equal(t, 1, cache.Len())
}

func TestTokenCache_NearExpiryForcesExchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, clock := newTestTokenCache(t, ctrl)
	ctx := context.Background()
	creds := testCreds()

	// Token valid for only 30s — inside the 60s freshness margin, so it must
	// never be served from cache.
	exchanger.EXPECT().Exchange(ctx, creds).Return(models.TenantToken{
		Value:     "t-short",
		ExpiresAt: clock.Add(30 * time.Second),
	}, nil)
	exchanger.EXPECT().Exchange(ctx, creds).Return(models.TenantToken{
		Value:     "t-fresh",
		ExpiresAt: clock.Add(2 * time.Hour),
	}, nil)

	token, err := cache.Token(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t-short", token)

	token, err = cache.Token(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t-fresh", token)
}

func TestTokenCache_ExpiryAfterClockAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, clock := newTestTokenCache(t, ctrl)
	ctx := context.Background()
	creds := testCreds()

	exchanger.EXPECT().Exchange(ctx, creds).Return(models.TenantToken{
		Value:     "t-1",
		ExpiresAt: clock.Add(2 * time.Hour),
	}, nil)

	_, err := cache.Token(ctx, creds)
	require.NoError(t, err)

	// Advance to 90s before expiry: still fresh.
	*clock = clock.Add(2*time.Hour - 90*time.Second)
	token, err := cache.Token(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t-1", token)

	// Advance to 30s before expiry: inside the margin, re-exchange.
	exchanger.EXPECT().Exchange(ctx, creds).Return(models.TenantToken{
		Value:     "t-2",
		ExpiresAt: clock.Add(2 * time.Hour),
	}, nil)
	*clock = clock.Add(60 * time.Second)
	token, err = cache.Token(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t-2", token)
}

func TestTokenCache_ExchangeErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, _ := newTestTokenCache(t, ctrl)
	ctx := context.Background()
	creds := testCreds()

	wantErr := errors.New("auth endpoint rejected")
	exchanger.EXPECT().Exchange(ctx, creds).Return(models.TenantToken{}, wantErr)

	_, err := cache.Token(ctx, creds)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.Zero(t, cache.Len(), "a failed exchange must not cache anything")
}

func TestTokenCache_KeyedByDomainAndAppID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, clock := newTestTokenCache(t, ctrl)
	ctx := context.Background()

	feishu := models.Credentials{AppID: "cli_abc", AppSecret: "shh", Domain: "feishu"}
	lark := models.Credentials{AppID: "cli_abc", AppSecret: "shh", Domain: "lark"}

	exchanger.EXPECT().Exchange(ctx, feishu).Return(models.TenantToken{
		Value: "t-feishu", ExpiresAt: clock.Add(2 * time.Hour),
	}, nil)
	exchanger.EXPECT().Exchange(ctx, lark).Return(models.TenantToken{
		Value: "t-lark", ExpiresAt: clock.Add(2 * time.Hour),
	}, nil)

	tokenA, err := cache.Token(ctx, feishu)
	require.NoError(t, err)
	tokenB, err := cache.Token(ctx, lark)
	require.NoError(t, err)

	assert.Equal(t, "t-feishu", tokenA)
	assert.Equal(t, "t-lark", tokenB)
	assert.Equal(t, 2, cache.Len())
}

func TestTokenCache_SweepRemovesExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, clock := newTestTokenCache(t, ctrl)
	ctx := context.Background()

	stale := models.Credentials{AppID: "cli_old", AppSecret: "shh", Domain: "feishu"}
	exchanger.EXPECT().Exchange(ctx, stale).Return(models.TenantToken{
		Value: "t-old", ExpiresAt: clock.Add(time.Hour),
	}, nil)
	_, err := cache.Token(ctx, stale)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	// Advance past both the entry's expiry and the sweep rate limit; the next
	// lookup's sweep drops the stale entry before the miss is handled.
	*clock = clock.Add(2 * time.Hour)

	fresh := models.Credentials{AppID: "cli_new", AppSecret: "shh", Domain: "feishu"}
	exchanger.EXPECT().Exchange(ctx, fresh).Return(models.TenantToken{
		Value: "t-new", ExpiresAt: clock.Add(2 * time.Hour),
	}, nil)
	_, err = cache.Token(ctx, fresh)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Len(), "expired entry should be swept")
}

func TestTokenCache_SweepIsRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, exchanger, clock := newTestTokenCache(t, ctrl)
	ctx := context.Background()

	stale := models.Credentials{AppID: "cli_old", AppSecret: "shh", Domain: "feishu"}
	exchanger.EXPECT().Exchange(ctx, stale).Return(models.TenantToken{
		Value: "t-old", ExpiresAt: clock.Add(time.Minute),
	}, nil)
	_, err := cache.Token(ctx, stale)
	require.NoError(t, err)

	// Entry expires, but only 2 minutes pass since the last sweep — under the
	// 5 minute rate limit, so the stale entry survives the next lookup.
	*clock = clock.Add(2 * time.Minute)

	fresh := models.Credentials{AppID: "cli_new", AppSecret: "shh", Domain: "feishu"}
	exchanger.EXPECT().Exchange(ctx, fresh).Return(models.TenantToken{
		Value: "t-new", ExpiresAt: clock.Add(time.Hour),
	}, nil)
	_, err = cache.Token(ctx, fresh)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.Len(), "sweep must not run again within its rate limit")
}
