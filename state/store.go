package state

import (
	"context"
	"errors"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
)

var ErrStickerNotFound = errors.New("sticker not found")

// StickerStore stores the stickers of guilds. Stores replace the full set of
// stickers of a guild at once, matching how discord sends sticker updates.
type StickerStore interface {
	// GetSticker returns a cached sticker or ErrStickerNotFound.
	GetSticker(ctx context.Context, stickerID discord.StickerID) (discord.Sticker, error)

	// GetGuildStickers returns the cached stickers of a guild.
	GetGuildStickers(ctx context.Context, guildID discord.GuildID) ([]discord.Sticker, error)

	// SetGuildStickers replaces the stickers of a guild and returns the stickers
	// that were cached before.
	SetGuildStickers(ctx context.Context, guildID discord.GuildID, stickers []discord.Sticker) ([]discord.Sticker, error)

	// RemoveGuild removes all stickers of a guild and returns them.
	RemoveGuild(ctx context.Context, guildID discord.GuildID) ([]discord.Sticker, error)

	// Count returns how many stickers are cached.
	Count(ctx context.Context) (int, error)
}
