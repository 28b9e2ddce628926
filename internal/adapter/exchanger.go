package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/internal/utils"
	"github.com/livecard/larkstream/models"
)

const tokenExchangePath = "/auth/v3/tenant_access_token/internal"

// defaultTokenTTL is applied when the exchange reply omits the TTL.
const defaultTokenTTL = 7200 * time.Second

type tokenExchanger struct {
	client     *utils.HTTPClient
	requestIDs *utils.UUIDGenerator
	logger     *logger.Logger

	now func() time.Time
}

// NewExchanger constructs the HTTP implementation of [Exchanger]. One
// exchanger serves all deployment domains; the endpoint is resolved per call
// from the credentials, so a multi-tenant process needs only one instance.
func NewExchanger(timeout time.Duration, log *logger.Logger) Exchanger {
	client := utils.NewHTTPClient()
	client.SetTimeout(timeout)

	return &tokenExchanger{
		client:     client,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     log,
		now:        time.Now,
	}
}

// Exchange implements [Exchanger]. It POSTs the application credentials to
// the tenant token endpoint of the credentials' domain. A non-zero status
// code or a missing token field fails with [ErrAuth]; the caller decides
// whether to surface or retry (the credential cache surfaces, never retries).
func (e *tokenExchanger) Exchange(ctx context.Context, creds models.Credentials) (models.TenantToken, error) {
	var result models.TokenResponse

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-Id", e.requestIDs.Generate()).
		SetBody(models.TokenRequest{AppID: creds.AppID, AppSecret: creds.AppSecret}).
		SetResult(&result).
		Post(models.ResolveDomain(creds.Domain) + tokenExchangePath)
	if err != nil {
		return models.TenantToken{}, fmt.Errorf("token exchange request: %w", err)
	}
	if err = mapAPIError(resp, result.BaseResponse); err != nil {
		return models.TenantToken{}, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if result.TenantAccessToken == "" {
		return models.TenantToken{}, fmt.Errorf("%w: empty token in reply", ErrAuth)
	}

	ttl := time.Duration(result.Expire) * time.Second
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	token := models.TenantToken{
		Value:     result.TenantAccessToken,
		ExpiresAt: e.now().Add(ttl),
	}

	e.logger.Debug().
		Str("app_id", creds.AppID).
		Time("expires_at", token.ExpiresAt).
		Msg("tenant token exchanged")
	return token, nil
}
