package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
	"github.com/go-redis/redis/v8"
)

const (
	redisStickerKey       = "sticker:"
	redisGuildStickersKey = "guild_stickers:"
	redisAllStickersKey   = "stickers"
)

// RedisStore is a StickerStore shared through redis. Every sticker is stored
// as JSON under its own key, each guild keeps a set of its sticker ids.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (rs *RedisStore) stickerKey(stickerID discord.StickerID) string {
	return rs.prefix + redisStickerKey + stickerID.String()
}

func (rs *RedisStore) guildKey(guildID discord.GuildID) string {
	return rs.prefix + redisGuildStickersKey + guildID.String()
}

func (rs *RedisStore) GetSticker(ctx context.Context, stickerID discord.StickerID) (discord.Sticker, error) {
	var sticker discord.Sticker

	data, err := rs.client.Get(ctx, rs.stickerKey(stickerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sticker, ErrStickerNotFound
		}

		return sticker, fmt.Errorf("failed to get sticker: %w", err)
	}

	if err = sandwichjson.Unmarshal(data, &sticker); err != nil {
		return sticker, fmt.Errorf("failed to unmarshal sticker: %w", err)
	}

	return sticker, nil
}

func (rs *RedisStore) GetGuildStickers(ctx context.Context, guildID discord.GuildID) ([]discord.Sticker, error) {
	stickerIDs, err := rs.client.SMembers(ctx, rs.guildKey(guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get guild sticker ids: %w", err)
	}

	stickers := make([]discord.Sticker, 0, len(stickerIDs))

	if len(stickerIDs) == 0 {
		return stickers, nil
	}

	keys := make([]string, len(stickerIDs))
	for i, stickerID := range stickerIDs {
		keys[i] = rs.prefix + redisStickerKey + stickerID
	}

	values, err := rs.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get guild stickers: %w", err)
	}

	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}

		var sticker discord.Sticker

		if err = sandwichjson.Unmarshal([]byte(data), &sticker); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sticker: %w", err)
		}

		stickers = append(stickers, sticker)
	}

	return stickers, nil
}

func (rs *RedisStore) SetGuildStickers(ctx context.Context, guildID discord.GuildID, stickers []discord.Sticker) ([]discord.Sticker, error) {
	old, err := rs.GetGuildStickers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	pipe := rs.client.TxPipeline()

	rs.queueRemove(ctx, pipe, guildID, old)

	if len(stickers) > 0 {
		stickerIDs := make([]interface{}, 0, len(stickers))

		for _, sticker := range stickers {
			data, err := sandwichjson.Marshal(sticker)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal sticker: %w", err)
			}

			pipe.Set(ctx, rs.stickerKey(sticker.ID()), data, 0)
			stickerIDs = append(stickerIDs, sticker.ID().String())
		}

		pipe.SAdd(ctx, rs.guildKey(guildID), stickerIDs...)
		pipe.SAdd(ctx, rs.prefix+redisAllStickersKey, stickerIDs...)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to set guild stickers: %w", err)
	}

	return old, nil
}

func (rs *RedisStore) RemoveGuild(ctx context.Context, guildID discord.GuildID) ([]discord.Sticker, error) {
	old, err := rs.GetGuildStickers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	pipe := rs.client.TxPipeline()

	rs.queueRemove(ctx, pipe, guildID, old)

	if _, err = pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to remove guild stickers: %w", err)
	}

	return old, nil
}

func (rs *RedisStore) queueRemove(ctx context.Context, pipe redis.Pipeliner, guildID discord.GuildID, stickers []discord.Sticker) {
	pipe.Del(ctx, rs.guildKey(guildID))

	if len(stickers) == 0 {
		return
	}

	keys := make([]string, 0, len(stickers))
	stickerIDs := make([]interface{}, 0, len(stickers))

	for _, sticker := range stickers {
		keys = append(keys, rs.stickerKey(sticker.ID()))
		stickerIDs = append(stickerIDs, sticker.ID().String())
	}

	pipe.Del(ctx, keys...)
	pipe.SRem(ctx, rs.prefix+redisAllStickersKey, stickerIDs...)
}

func (rs *RedisStore) Count(ctx context.Context) (int, error) {
	count, err := rs.client.SCard(ctx, rs.prefix+redisAllStickersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count stickers: %w", err)
	}

	return int(count), nil
}
