package internal

import (
	"context"
	"fmt"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/events"
	"github.com/WelcomerTeam/Sandwich-Events/state"
	"golang.org/x/xerrors"
)

const (
	StickerCommandName     = "sticker"
	StickerCommandOptionID = "id"
)

func (sd *StickerDaemon) registerHandlers() {
	events.Handle(sd.Dispatcher, sd.OnStickerCommand)
	events.Handle(sd.Dispatcher, sd.OnGuildStickersUpdate)
}

// OnStickerCommand replies with the name and asset of the sticker with the id given.
func (sd *StickerDaemon) OnStickerCommand(ctx context.Context, event *events.SlashCommandEvent) error {
	if event.Name() != StickerCommandName {
		return nil
	}

	option := event.Option(StickerCommandOptionID)
	if option == nil {
		return event.Reply(ctx, "Provide the id of a sticker.", true)
	}

	stickerID, err := option.SnowflakeValue()
	if err != nil || stickerID.IsNil() {
		return event.Reply(ctx, "That is not a valid sticker id.", true)
	}

	sticker, err := sd.LookupSticker(ctx, discord.StickerID(stickerID))
	if err != nil {
		if xerrors.Is(err, state.ErrStickerNotFound) {
			return event.Reply(ctx, "No sticker exists with that id.", true)
		}

		_ = event.Reply(ctx, "Something went wrong looking up that sticker.", true)

		return xerrors.Errorf("failed to lookup sticker: %w", err)
	}

	return event.Reply(ctx, FormatSticker(sticker), false)
}

// FormatSticker returns the message describing a sticker.
func FormatSticker(sticker discord.Sticker) string {
	iconURL, err := sticker.IconURL()
	if err != nil {
		return fmt.Sprintf("**%s** uses a format that can not be displayed.", sticker.Name())
	}

	if sticker.Description() == "" {
		return fmt.Sprintf("**%s**\n%s", sticker.Name(), iconURL)
	}

	return fmt.Sprintf("**%s**: %s\n%s", sticker.Name(), sticker.Description(), iconURL)
}

func (sd *StickerDaemon) OnGuildStickersUpdate(_ context.Context, event *events.GuildStickersUpdateEvent) error {
	sd.Logger.Info().
		Str("guild_id", event.GuildID.String()).
		Int("added", len(event.Added())).
		Int("removed", len(event.Removed())).
		Int("total", len(event.Stickers)).
		Msg("Guild stickers updated")

	return nil
}
