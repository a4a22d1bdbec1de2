package discord

import (
	"fmt"
	"net/http"
)

// webhook.go represents the interaction webhook endpoints used after the
// initial response of an interaction.

// WebhookMessageParams represents the message sent to an interaction webhook.
type WebhookMessageParams struct {
	Content string `json:"content,omitempty"`
	Flags   uint32 `json:"flags,omitempty"`
	TTS     bool   `json:"tts,omitempty"`
}

// NewWebhookMessageParams converts the data of an interaction response into a webhook message.
func NewWebhookMessageParams(data *InteractionCallbackData) WebhookMessageParams {
	if data == nil {
		return WebhookMessageParams{}
	}

	return WebhookMessageParams{
		Content: data.Content,
		Flags:   data.Flags,
		TTS:     data.TTS,
	}
}

// Message represents the parts of a message returned by interaction webhooks.
type Message struct {
	ChannelID ChannelID `json:"channel_id"`
	Content   string    `json:"content"`
	ID        MessageID `json:"id"`
	Flags     uint32    `json:"flags,omitempty"`
}

// EditOriginalInteractionResponse edits the initial response of an interaction,
// such as the message shown after a deferred response.
func EditOriginalInteractionResponse(s *Session, applicationID ApplicationID, interactionToken string, params WebhookMessageParams) (*Message, error) {
	endpoint := EndpointWebhookMessage(applicationID.String(), interactionToken, "@original")

	var message *Message

	err := s.Interface.FetchJJ(s, http.MethodPatch, endpoint, params, nil, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to edit original interaction response: %w", err)
	}

	return message, nil
}

// CreateFollowupMessage sends a new message to an interaction that has been responded to.
func CreateFollowupMessage(s *Session, applicationID ApplicationID, interactionToken string, params WebhookMessageParams) (*Message, error) {
	endpoint := EndpointWebhookToken(applicationID.String(), interactionToken)

	var message *Message

	err := s.Interface.FetchJJ(s, http.MethodPost, endpoint, params, nil, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to create followup message: %w", err)
	}

	return message, nil
}
