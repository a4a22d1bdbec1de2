package discord

// endpoints.go contains the rest routes used by the library.

func EndpointSticker(stickerID string) string {
	return "/stickers/" + stickerID
}

func EndpointStickerPacks() string {
	return "/sticker-packs"
}

func EndpointGuildStickers(guildID string) string {
	return "/guilds/" + guildID + "/stickers"
}

func EndpointGuildSticker(guildID, stickerID string) string {
	return "/guilds/" + guildID + "/stickers/" + stickerID
}

func EndpointInteractionResponse(interactionID, interactionToken string) string {
	return "/interactions/" + interactionID + "/" + interactionToken + "/callback"
}

func EndpointWebhookToken(webhookID, webhookToken string) string {
	return "/webhooks/" + webhookID + "/" + webhookToken
}

func EndpointWebhookMessage(webhookID, webhookToken, messageID string) string {
	return "/webhooks/" + webhookID + "/" + webhookToken + "/messages/" + messageID
}
