package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/internal/utils"
	"github.com/livecard/larkstream/models"
)

const (
	createCardPath    = "/cardkit/v1/cards"
	createMessagePath = "/im/v1/messages"

	msgTypeInteractive = "interactive"
)

// CardClient is the HTTP/REST implementation of [CardAPI] bound to one set of
// application credentials. Bearer tokens are resolved through the injected
// [TokenSource] on every request, so credential refresh is transparent to the
// streaming layer.
type CardClient struct {
	client *utils.HTTPClient

	creds  models.Credentials
	tokens TokenSource

	requestIDs *utils.UUIDGenerator
	logger     *logger.Logger
}

// NewCardClient constructs a [CardClient] whose base URL is the resolved
// deployment domain of creds. timeout bounds each outbound request; zero
// leaves the transport's default in place.
func NewCardClient(creds models.Credentials, tokens TokenSource, timeout time.Duration, log *logger.Logger) *CardClient {
	client := utils.NewHTTPClient()
	client.
		SetBaseURL(models.ResolveDomain(creds.Domain)).
		SetTimeout(timeout)

	return &CardClient{
		client:     client,
		creds:      creds,
		tokens:     tokens,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     log,
	}
}

// Credentials returns the application identity this client is bound to.
// The client cache compares it against requested credentials to detect
// rotation under a stable account id.
func (c *CardClient) Credentials() models.Credentials {
	return c.creds
}

// CreateCard implements [CardAPI]. It POSTs a card_json entity with a
// placeholder body and streaming mode on, and returns the new card id.
func (c *CardClient) CreateCard(ctx context.Context) (string, error) {
	cardJSON, err := models.StreamingCardJSON()
	if err != nil {
		return "", err
	}

	var result models.CardCreateResponse
	req, err := c.authedRequest(ctx)
	if err != nil {
		return "", err
	}

	resp, err := req.
		SetBody(models.CardCreateRequest{Type: "card_json", Data: cardJSON}).
		SetResult(&result).
		Post(createCardPath)
	if err != nil {
		return "", fmt.Errorf("create card request: %w", err)
	}
	if err = mapAPIError(resp, result.BaseResponse); err != nil {
		return "", err
	}

	c.logger.Debug().Str("card_id", result.Data.CardID).Msg("card created")
	return result.Data.CardID, nil
}

// SendCardMessage implements [CardAPI]. It POSTs an interactive message whose
// content references cardID and returns the created message id.
func (c *CardClient) SendCardMessage(ctx context.Context, receiveID string, idType models.ReceiveIDType, cardID string) (string, error) {
	content, err := models.CardMessageContent(cardID)
	if err != nil {
		return "", err
	}

	var result models.MessageCreateResponse
	req, err := c.authedRequest(ctx)
	if err != nil {
		return "", err
	}

	resp, err := req.
		SetQueryParam("receive_id_type", string(idType)).
		SetBody(models.MessageCreateRequest{
			ReceiveID: receiveID,
			MsgType:   msgTypeInteractive,
			Content:   content,
		}).
		SetResult(&result).
		Post(createMessagePath)
	if err != nil {
		return "", fmt.Errorf("send card message request: %w", err)
	}
	if err = mapAPIError(resp, result.BaseResponse); err != nil {
		return "", err
	}

	c.logger.Debug().
		Str("card_id", cardID).
		Str("message_id", result.Data.MessageID).
		Msg("card message sent")
	return result.Data.MessageID, nil
}

// UpdateContent implements [CardAPI]. It PUTs a content replacement for the
// card's content element carrying sequence and the content-addressed
// idempotency token "s_{cardID}_{sequence}".
func (c *CardClient) UpdateContent(ctx context.Context, cardID, content string, sequence int) error {
	var result models.MutationResponse
	req, err := c.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(models.ContentUpdateRequest{
			Content:  content,
			Sequence: sequence,
			UUID:     models.ContentUpdateUUID(cardID, sequence),
		}).
		SetResult(&result).
		Put(fmt.Sprintf("/cardkit/v1/cards/%s/elements/content/content", cardID))
	if err != nil {
		return fmt.Errorf("content update request: %w", err)
	}

	return mapAPIError(resp, result.BaseResponse)
}

// UpdateSettings implements [CardAPI]. It PATCHes the card settings carrying
// sequence and the idempotency token "c_{cardID}_{sequence}".
func (c *CardClient) UpdateSettings(ctx context.Context, cardID, settings string, sequence int) error {
	var result models.MutationResponse
	req, err := c.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(models.SettingsUpdateRequest{
			Settings: settings,
			Sequence: sequence,
			UUID:     models.SettingsUpdateUUID(cardID, sequence),
		}).
		SetResult(&result).
		Patch(fmt.Sprintf("/cardkit/v1/cards/%s/settings", cardID))
	if err != nil {
		return fmt.Errorf("settings update request: %w", err)
	}

	return mapAPIError(resp, result.BaseResponse)
}

// authedRequest resolves a bearer token through the token source and prepares
// a request carrying it plus a fresh correlation id. Token resolution errors
// (auth rejections) propagate to the caller of the operation that needed the
// request.
func (c *CardClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := c.tokens.Token(ctx, c.creds)
	if err != nil {
		return nil, err
	}

	return c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("X-Request-Id", c.requestIDs.Generate()), nil
}
