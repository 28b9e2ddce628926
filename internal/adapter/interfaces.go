package adapter

import (
	"context"

	"github.com/livecard/larkstream/models"
)

// CardAPI is the outbound surface a streaming session talks to. One CardAPI
// value is bound to one application identity on one deployment domain; client
// handles are cached and reused across sessions of the same account.
type CardAPI interface {
	// CreateCard creates a remote card entity pre-populated with a
	// placeholder body and streaming mode enabled, returning its card id.
	CreateCard(ctx context.Context) (string, error)

	// SendCardMessage sends an interactive message referencing cardID to the
	// recipient and returns the created message id.
	SendCardMessage(ctx context.Context, receiveID string, idType models.ReceiveIDType, cardID string) (string, error)

	// UpdateContent replaces the card's content element. sequence orders the
	// mutation and derives its idempotency token.
	UpdateContent(ctx context.Context, cardID, content string, sequence int) error

	// UpdateSettings applies a settings mutation to the card (settings is a
	// JSON string). sequence shares the same counter as UpdateContent.
	UpdateSettings(ctx context.Context, cardID, settings string, sequence int) error
}

// Exchanger performs the application-credential exchange against the auth
// endpoint of the credentials' deployment domain.
type Exchanger interface {
	Exchange(ctx context.Context, creds models.Credentials) (models.TenantToken, error)
}

// TokenSource yields a live bearer token for the given credentials.
// Implemented by the credential cache; a CardAPI consults it before every
// authenticated request.
type TokenSource interface {
	Token(ctx context.Context, creds models.Credentials) (string, error)
}
