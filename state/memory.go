package state

import (
	"context"
	"sync"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// MemoryStore is a StickerStore kept in process memory.
type MemoryStore struct {
	stickers      *csmap.CsMap[discord.StickerID, discord.Sticker]
	guildStickers *csmap.CsMap[discord.GuildID, []discord.StickerID]

	// Writes touch both maps.
	writeMu sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stickers: csmap.Create(
			csmap.WithSize[discord.StickerID, discord.Sticker](1000),
		),
		guildStickers: csmap.Create(
			csmap.WithSize[discord.GuildID, []discord.StickerID](100),
		),
	}
}

func (ms *MemoryStore) GetSticker(_ context.Context, stickerID discord.StickerID) (discord.Sticker, error) {
	sticker, ok := ms.stickers.Load(stickerID)
	if !ok {
		return discord.Sticker{}, ErrStickerNotFound
	}

	return sticker, nil
}

func (ms *MemoryStore) GetGuildStickers(_ context.Context, guildID discord.GuildID) ([]discord.Sticker, error) {
	return ms.guildStickersLocked(guildID), nil
}

func (ms *MemoryStore) guildStickersLocked(guildID discord.GuildID) []discord.Sticker {
	stickerIDs, ok := ms.guildStickers.Load(guildID)
	if !ok {
		return []discord.Sticker{}
	}

	stickers := make([]discord.Sticker, 0, len(stickerIDs))

	for _, stickerID := range stickerIDs {
		if sticker, ok := ms.stickers.Load(stickerID); ok {
			stickers = append(stickers, sticker)
		}
	}

	return stickers
}

func (ms *MemoryStore) SetGuildStickers(_ context.Context, guildID discord.GuildID, stickers []discord.Sticker) ([]discord.Sticker, error) {
	ms.writeMu.Lock()
	defer ms.writeMu.Unlock()

	old := ms.removeGuildLocked(guildID)

	stickerIDs := make([]discord.StickerID, 0, len(stickers))

	for _, sticker := range stickers {
		ms.stickers.Store(sticker.ID(), sticker)
		stickerIDs = append(stickerIDs, sticker.ID())
	}

	ms.guildStickers.Store(guildID, stickerIDs)

	return old, nil
}

func (ms *MemoryStore) RemoveGuild(_ context.Context, guildID discord.GuildID) ([]discord.Sticker, error) {
	ms.writeMu.Lock()
	defer ms.writeMu.Unlock()

	return ms.removeGuildLocked(guildID), nil
}

func (ms *MemoryStore) removeGuildLocked(guildID discord.GuildID) []discord.Sticker {
	old := ms.guildStickersLocked(guildID)

	for _, sticker := range old {
		ms.stickers.Delete(sticker.ID())
	}

	ms.guildStickers.Delete(guildID)

	return old
}

func (ms *MemoryStore) Count(_ context.Context) (int, error) {
	return ms.stickers.Count(), nil
}
