package discord

// channel.go contains the information relating to channels

// ChannelType represents a channel's type.
type ChannelType uint16

const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
	ChannelTypeGuildNews
	ChannelTypeGuildStore
	_
	_
	_
	ChannelTypeGuildNewsThread
	ChannelTypeGuildPublicThread
	ChannelTypeGuildPrivateThread
	ChannelTypeGuildStageVoice
)

// Channel represents a Discord channel. Interactions only carry a partial channel.
type Channel struct {
	GuildID  *GuildID    `json:"guild_id,omitempty"`
	ParentID *ChannelID  `json:"parent_id,omitempty"`
	Name     string      `json:"name,omitempty"`
	Topic    string      `json:"topic,omitempty"`
	ID       ChannelID   `json:"id"`
	Type     ChannelType `json:"type"`
	NSFW     bool        `json:"nsfw,omitempty"`
}

// IsThread reports if the channel is any kind of thread.
func (c Channel) IsThread() bool {
	switch c.Type {
	case ChannelTypeGuildNewsThread, ChannelTypeGuildPublicThread, ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}

// Mention returns the string used to mention the channel in messages.
func (c Channel) Mention() string {
	return "<#" + c.ID.String() + ">"
}
