package discord

import (
	"fmt"
	"net/http"
)

// GetSticker returns a sticker by its id. Works for both standard and guild stickers.
func GetSticker(s *Session, stickerID StickerID) (*Sticker, error) {
	endpoint := EndpointSticker(stickerID.String())

	var sticker *Sticker

	err := s.Interface.FetchJJ(s, http.MethodGet, endpoint, nil, nil, &sticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get sticker: %w", err)
	}

	return sticker, nil
}

// ListStickerPacks returns the packs of standard stickers available to nitro subscribers.
func ListStickerPacks(s *Session) ([]StickerPack, error) {
	endpoint := EndpointStickerPacks()

	var stickerPacks StickerPacks

	err := s.Interface.FetchJJ(s, http.MethodGet, endpoint, nil, nil, &stickerPacks)
	if err != nil {
		return nil, fmt.Errorf("failed to list sticker packs: %w", err)
	}

	return stickerPacks.StickerPacks, nil
}

// ListGuildStickers returns the stickers uploaded to a guild.
func ListGuildStickers(s *Session, guildID GuildID) ([]Sticker, error) {
	endpoint := EndpointGuildStickers(guildID.String())

	var stickers []Sticker

	err := s.Interface.FetchJJ(s, http.MethodGet, endpoint, nil, nil, &stickers)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild stickers: %w", err)
	}

	return stickers, nil
}

// GetGuildSticker returns a sticker uploaded to a guild.
func GetGuildSticker(s *Session, guildID GuildID, stickerID StickerID) (*Sticker, error) {
	endpoint := EndpointGuildSticker(guildID.String(), stickerID.String())

	var sticker *Sticker

	err := s.Interface.FetchJJ(s, http.MethodGet, endpoint, nil, nil, &sticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild sticker: %w", err)
	}

	return sticker, nil
}
