package discord

// events.go contains the structures of received dispatch events that carry stickers
// or interactions.

// GuildStickersUpdate represents a guild stickers update event.
type GuildStickersUpdate struct {
	Stickers StickerList `json:"stickers"`
	GuildID  GuildID     `json:"guild_id"`
}

// GuildCreate represents the parts of a guild create event used for sticker state.
type GuildCreate struct {
	Name     string      `json:"name"`
	Stickers StickerList `json:"stickers"`
	ID       GuildID     `json:"id"`
}

// GuildDelete represents a guild delete event. When Unavailable is set the guild
// is suffering an outage and the bot has not been removed.
type GuildDelete struct {
	ID          GuildID `json:"id"`
	Unavailable bool    `json:"unavailable"`
}

// InteractionCreate represents an interaction create event.
type InteractionCreate Interaction

// Dispatch event types that carry stickers or interactions.
const (
	DiscordEventGuildCreate         = "GUILD_CREATE"
	DiscordEventGuildDelete         = "GUILD_DELETE"
	DiscordEventGuildStickersUpdate = "GUILD_STICKERS_UPDATE"
	DiscordEventInteractionCreate   = "INTERACTION_CREATE"
)
