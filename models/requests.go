package models

import (
	"encoding/json"
	"fmt"
)

// ReceiveIDType tells the message endpoint how to interpret a recipient id.
type ReceiveIDType string

const (
	ReceiveOpenID  ReceiveIDType = "open_id"
	ReceiveUserID  ReceiveIDType = "user_id"
	ReceiveUnionID ReceiveIDType = "union_id"
	ReceiveEmail   ReceiveIDType = "email"
	ReceiveChatID  ReceiveIDType = "chat_id"
)

// TokenRequest is the body of the tenant token exchange call.
type TokenRequest struct {
	AppID     string `json:"app_id"`
	AppSecret string `json:"app_secret"`
}

// CardCreateRequest is the body of the card entity creation call. Data carries
// the card schema as a JSON string, per the card_json contract.
type CardCreateRequest struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// MessageCreateRequest is the body of the interactive message send call.
// Content is a JSON string referencing a previously created card entity.
type MessageCreateRequest struct {
	ReceiveID string `json:"receive_id"`
	MsgType   string `json:"msg_type"`
	Content   string `json:"content"`
}

// ContentUpdateRequest is the body of a content-replace mutation on a card
// element. UUID is a content-addressed idempotency token in the form
// "s_{cardID}_{sequence}" so duplicate transport-level delivery is a no-op.
type ContentUpdateRequest struct {
	Content  string `json:"content"`
	Sequence int    `json:"sequence"`
	UUID     string `json:"uuid"`
}

// SettingsUpdateRequest is the body of a card settings mutation. Settings
// carries the settings object as a JSON string; UUID is the idempotency token
// in the form "c_{cardID}_{sequence}".
type SettingsUpdateRequest struct {
	Settings string `json:"settings"`
	Sequence int    `json:"sequence"`
	UUID     string `json:"uuid"`
}

// ContentUpdateUUID derives the idempotency token for a content mutation.
func ContentUpdateUUID(cardID string, sequence int) string {
	return fmt.Sprintf("s_%s_%d", cardID, sequence)
}

// SettingsUpdateUUID derives the idempotency token for a settings mutation.
func SettingsUpdateUUID(cardID string, sequence int) string {
	return fmt.Sprintf("c_%s_%d", cardID, sequence)
}

// StreamingCardJSON builds the card_json schema for a freshly created live
// card: a single markdown element (element id "content") holding a placeholder
// body, with streaming mode switched on so the surface renders incremental
// updates in place.
func StreamingCardJSON() (string, error) {
	card := map[string]any{
		"schema": "2.0",
		"config": map[string]any{
			"streaming_mode": true,
			"summary": map[string]any{
				"content": "",
			},
		},
		"body": map[string]any{
			"elements": []any{
				map[string]any{
					"tag":        "markdown",
					"element_id": "content",
					"content":    "",
				},
			},
		},
	}

	raw, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("marshal streaming card schema: %w", err)
	}
	return string(raw), nil
}

// CardMessageContent builds the interactive message content that attaches a
// created card entity to an outgoing message.
func CardMessageContent(cardID string) (string, error) {
	content := map[string]any{
		"type": "card",
		"data": map[string]any{
			"card_id": cardID,
		},
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("marshal card message content: %w", err)
	}
	return string(raw), nil
}

// ClosedSettingsJSON builds the settings payload that finalizes a card:
// streaming mode is switched off and the collapsed-view summary is set to the
// truncated final text.
func ClosedSettingsJSON(summary string) (string, error) {
	settings := map[string]any{
		"config": map[string]any{
			"streaming_mode": false,
			"summary": map[string]any{
				"content": summary,
			},
		},
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshal closed card settings: %w", err)
	}
	return string(raw), nil
}
