package events

import "github.com/WelcomerTeam/Sandwich-Events/discord"

// GuildStickersUpdateEvent is dispatched when the stickers of a guild change.
// Discord always sends the full set of stickers of the guild.
type GuildStickersUpdateEvent struct {
	*GenericEvent

	Stickers    []discord.Sticker
	OldStickers []discord.Sticker
	GuildID     discord.GuildID
}

// Added returns stickers that were not cached before the update.
func (e *GuildStickersUpdateEvent) Added() []discord.Sticker {
	return stickerDifference(e.Stickers, e.OldStickers)
}

// Removed returns cached stickers that are no longer in the guild.
func (e *GuildStickersUpdateEvent) Removed() []discord.Sticker {
	return stickerDifference(e.OldStickers, e.Stickers)
}

func stickerDifference(a, b []discord.Sticker) []discord.Sticker {
	seen := make(map[discord.StickerID]struct{}, len(b))
	for _, sticker := range b {
		seen[sticker.ID()] = struct{}{}
	}

	difference := make([]discord.Sticker, 0)

	for _, sticker := range a {
		if _, ok := seen[sticker.ID()]; !ok {
			difference = append(difference, sticker)
		}
	}

	return difference
}
