package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationUUIDsAreDeterministicAndDistinct(t *testing.T) {
	assert.Equal(t, "s_card-1_3", ContentUpdateUUID("card-1", 3))
	assert.Equal(t, "c_card-1_3", SettingsUpdateUUID("card-1", 3))

	// Same card and sequence, different mutation kind: tokens must not collide.
	assert.NotEqual(t, ContentUpdateUUID("card-1", 3), SettingsUpdateUUID("card-1", 3))
}

func TestStreamingCardJSON(t *testing.T) {
	raw, err := StreamingCardJSON()
	require.NoError(t, err)

	var card struct {
		Schema string `json:"schema"`
		Config struct {
			StreamingMode bool `json:"streaming_mode"`
		} `json:"config"`
		Body struct {
			Elements []struct {
				Tag       string `json:"tag"`
				ElementID string `json:"element_id"`
			} `json:"elements"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &card))

	assert.Equal(t, "2.0", card.Schema)
	assert.True(t, card.Config.StreamingMode)
	require.Len(t, card.Body.Elements, 1)
	assert.Equal(t, "markdown", card.Body.Elements[0].Tag)
	assert.Equal(t, "content", card.Body.Elements[0].ElementID)
}

func TestCardMessageContent(t *testing.T) {
	raw, err := CardMessageContent("card-42")
	require.NoError(t, err)

	var content struct {
		Type string `json:"type"`
		Data struct {
			CardID string `json:"card_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &content))

	assert.Equal(t, "card", content.Type)
	assert.Equal(t, "card-42", content.Data.CardID)
}

func TestClosedSettingsJSON(t *testing.T) {
	raw, err := ClosedSettingsJSON("it is done")
	require.NoError(t, err)

	var settings struct {
		Config struct {
			StreamingMode bool `json:"streaming_mode"`
			Summary       struct {
				Content string `json:"content"`
			} `json:"summary"`
		} `json:"config"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &settings))

	assert.False(t, settings.Config.StreamingMode)
	assert.Equal(t, "it is done", settings.Config.Summary.Content)
}
