package events

import (
	"context"
	"fmt"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
)

// dispatchDecoder decodes a payload into the events to pass to handlers.
// Decoders may return no events when the payload only updates state.
type dispatchDecoder func(ctx context.Context, d *Dispatcher, payload *SandwichPayload, responder Responder) ([]Event, error)

var dispatchDecoders = make(map[string]dispatchDecoder)

func registerDispatch(eventType string, decoder dispatchDecoder) {
	dispatchDecoders[eventType] = decoder
}

func init() {
	registerDispatch(discord.DiscordEventInteractionCreate, onInteractionCreate)
	registerDispatch(discord.DiscordEventGuildStickersUpdate, onGuildStickersUpdate)
	registerDispatch(discord.DiscordEventGuildCreate, onGuildCreate)
	registerDispatch(discord.DiscordEventGuildDelete, onGuildDelete)
}

func onInteractionCreate(ctx context.Context, d *Dispatcher, payload *SandwichPayload, responder Responder) ([]Event, error) {
	var interaction discord.Interaction

	if err := sandwichjson.Unmarshal(payload.Data, &interaction); err != nil {
		return nil, err
	}

	// Interactions can be received from both the gateway and the interactions endpoint.
	if !d.dedupe.Deduplicate(ctx, "interaction:"+interaction.ID.String(), d.dedupeTTL) {
		sandwichDiscardedEvents.WithLabelValues(payload.Type, "duplicate").Inc()

		d.Logger.Debug().Str("interaction_id", interaction.ID.String()).Msg("Dropped duplicate interaction")

		return nil, nil
	}

	event := NewGenericInteractionCreateEvent(d.newGenericEvent(payload), &interaction, responder)

	command, err := discord.NewCommandInteraction(&interaction)
	if err != nil {
		return []Event{event}, nil
	}

	switch command.CommandType() {
	case discord.ApplicationCommandTypeChatInput:
		return []Event{NewSlashCommandEvent(event, command)}, nil
	case discord.ApplicationCommandTypeUser, discord.ApplicationCommandTypeMessage:
		return []Event{NewContextCommandEvent(event, command)}, nil
	default:
		return []Event{NewGenericCommandEvent(event, command)}, nil
	}
}

func onGuildStickersUpdate(ctx context.Context, d *Dispatcher, payload *SandwichPayload, _ Responder) ([]Event, error) {
	var guildStickersUpdatePayload discord.GuildStickersUpdate

	if err := sandwichjson.Unmarshal(payload.Data, &guildStickersUpdatePayload); err != nil {
		return nil, err
	}

	oldStickers, err := d.store.SetGuildStickers(ctx, guildStickersUpdatePayload.GuildID, guildStickersUpdatePayload.Stickers)
	if err != nil {
		return nil, fmt.Errorf("failed to update guild stickers: %w", err)
	}

	return []Event{&GuildStickersUpdateEvent{
		GenericEvent: d.newGenericEvent(payload),
		GuildID:      guildStickersUpdatePayload.GuildID,
		Stickers:     guildStickersUpdatePayload.Stickers,
		OldStickers:  oldStickers,
	}}, nil
}

func onGuildCreate(ctx context.Context, d *Dispatcher, payload *SandwichPayload, _ Responder) ([]Event, error) {
	var guildCreatePayload discord.GuildCreate

	if err := sandwichjson.Unmarshal(payload.Data, &guildCreatePayload); err != nil {
		return nil, err
	}

	if _, err := d.store.SetGuildStickers(ctx, guildCreatePayload.ID, guildCreatePayload.Stickers); err != nil {
		return nil, fmt.Errorf("failed to set guild stickers: %w", err)
	}

	return nil, nil
}

func onGuildDelete(ctx context.Context, d *Dispatcher, payload *SandwichPayload, _ Responder) ([]Event, error) {
	var guildDeletePayload discord.GuildDelete

	if err := sandwichjson.Unmarshal(payload.Data, &guildDeletePayload); err != nil {
		return nil, err
	}

	// Unavailable guilds are still joined.
	if guildDeletePayload.Unavailable {
		return nil, nil
	}

	if _, err := d.store.RemoveGuild(ctx, guildDeletePayload.ID); err != nil {
		return nil, fmt.Errorf("failed to remove guild stickers: %w", err)
	}

	return nil, nil
}
