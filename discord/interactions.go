package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
)

// interactions.go represents the interaction objects.

// InteractionType represents the type of interaction.
type InteractionType uint16

const (
	InteractionTypePing InteractionType = 1 + iota
	InteractionTypeApplicationCommand
	InteractionTypeMessageComponent
	InteractionTypeApplicationCommandAutocomplete
	InteractionTypeModalSubmit
)

// ApplicationCommandType represents the type of application command.
type ApplicationCommandType uint16

const (
	// ApplicationCommandTypeChatInput is a slash command.
	ApplicationCommandTypeChatInput ApplicationCommandType = 1 + iota
	// ApplicationCommandTypeUser is a context menu command on a user.
	ApplicationCommandTypeUser
	// ApplicationCommandTypeMessage is a context menu command on a message.
	ApplicationCommandTypeMessage
)

// ApplicationCommandOptionType represents the type of an option.
type ApplicationCommandOptionType uint16

const (
	ApplicationCommandOptionTypeSubCommand ApplicationCommandOptionType = 1 + iota
	ApplicationCommandOptionTypeSubCommandGroup
	ApplicationCommandOptionTypeString
	ApplicationCommandOptionTypeInteger
	ApplicationCommandOptionTypeBoolean
	ApplicationCommandOptionTypeUser
	ApplicationCommandOptionTypeChannel
	ApplicationCommandOptionTypeRole
	ApplicationCommandOptionTypeMentionable
	ApplicationCommandOptionTypeNumber
	ApplicationCommandOptionTypeAttachment
)

// InteractionCallbackType represents the type of interaction callbacks.
type InteractionCallbackType uint16

const (
	InteractionCallbackTypePong InteractionCallbackType = 1 + iota

	_
	_

	// InteractionCallbackTypeChannelMessageSource responds to an interaction with a message.
	InteractionCallbackTypeChannelMessageSource

	// InteractionCallbackTypeDeferredChannelMessageSource acknowledges an interaction and
	// edits a response later, users see a loading state.
	InteractionCallbackTypeDeferredChannelMessageSource
)

// MessageFlagEphemeral only shows the message to the user that ran the interaction.
const MessageFlagEphemeral uint32 = 1 << 6

var ErrNotCommandInteraction = errors.New("interaction is not an application command")

// Interaction represents the structure of an interaction.
type Interaction struct {
	Member        *GuildMember     `json:"member,omitempty"`
	Data          *InteractionData `json:"data,omitempty"`
	GuildID       *GuildID         `json:"guild_id,omitempty"`
	ChannelID     *ChannelID       `json:"channel_id,omitempty"`
	Channel       *Channel         `json:"channel,omitempty"`
	User          *User            `json:"user,omitempty"`
	Token         string           `json:"token"`
	Locale        string           `json:"locale,omitempty"`
	GuildLocale   string           `json:"guild_locale,omitempty"`
	ID            InteractionID    `json:"id"`
	ApplicationID ApplicationID    `json:"application_id"`
	Version       int32            `json:"version"`
	Type          InteractionType  `json:"type"`
}

// Invoker returns the user that triggered the interaction. In guilds this is
// the user of the member.
func (i *Interaction) Invoker() *User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}

	return i.User
}

// InteractionResponse represents the interaction response object.
type InteractionResponse struct {
	Data *InteractionCallbackData `json:"data,omitempty"`
	Type InteractionCallbackType  `json:"type"`
}

// InteractionData represents the structure of interaction data.
type InteractionData struct {
	TargetID *Snowflake              `json:"target_id,omitempty"`
	GuildID  *GuildID                `json:"guild_id,omitempty"`
	Name     string                  `json:"name"`
	Options  []InteractionDataOption `json:"options,omitempty"`
	ID       ApplicationCommandID    `json:"id"`
	Type     ApplicationCommandType  `json:"type"`
}

// InteractionCallbackData represents the structure of the interaction callback data.
type InteractionCallbackData struct {
	Content string `json:"content,omitempty"`
	Flags   uint32 `json:"flags,omitempty"`
	TTS     bool   `json:"tts,omitempty"`
}

// InteractionDataOption represents the structure of an interaction option.
type InteractionDataOption struct {
	Name    string                       `json:"name"`
	Value   sandwichjson.RawMessage      `json:"value,omitempty"`
	Options []InteractionDataOption      `json:"options,omitempty"`
	Type    ApplicationCommandOptionType `json:"type"`
	Focused bool                         `json:"focused,omitempty"`
}

// StringValue returns the value of a string option.
func (o InteractionDataOption) StringValue() (string, error) {
	var value string

	if err := sandwichjson.Unmarshal(o.Value, &value); err != nil {
		return "", fmt.Errorf("failed to unmarshal option %s: %w", o.Name, err)
	}

	return value, nil
}

// IntValue returns the value of an integer option.
func (o InteractionDataOption) IntValue() (int64, error) {
	var value int64

	if err := sandwichjson.Unmarshal(o.Value, &value); err != nil {
		return 0, fmt.Errorf("failed to unmarshal option %s: %w", o.Name, err)
	}

	return value, nil
}

// SnowflakeValue returns the value of an option holding an id, such as user
// options or string options containing an id.
func (o InteractionDataOption) SnowflakeValue() (Snowflake, error) {
	var value Snowflake

	if err := value.UnmarshalJSON(o.Value); err != nil {
		return 0, fmt.Errorf("failed to unmarshal option %s: %w", o.Name, err)
	}

	return value, nil
}

// CommandInteraction is an interaction triggered by an application command.
type CommandInteraction struct {
	*Interaction
}

// NewCommandInteraction wraps an application command interaction.
// Returns ErrNotCommandInteraction for any other interaction type.
func NewCommandInteraction(interaction *Interaction) (*CommandInteraction, error) {
	if interaction == nil || interaction.Type != InteractionTypeApplicationCommand || interaction.Data == nil {
		return nil, ErrNotCommandInteraction
	}

	return &CommandInteraction{Interaction: interaction}, nil
}

// Channel returns the channel the command was used in. When discord does not
// include the partial channel, only the id and guild id are populated.
func (ci *CommandInteraction) Channel() *Channel {
	if ci.Interaction.Channel != nil {
		return ci.Interaction.Channel
	}

	if ci.ChannelID == nil {
		return nil
	}

	return &Channel{
		ID:      *ci.ChannelID,
		GuildID: ci.GuildID,
	}
}

// Name returns the name of the command.
func (ci *CommandInteraction) Name() string {
	return ci.Data.Name
}

// CommandID returns the id of the command.
func (ci *CommandInteraction) CommandID() ApplicationCommandID {
	return ci.Data.ID
}

func (ci *CommandInteraction) CommandType() ApplicationCommandType {
	return ci.Data.Type
}

func (ci *CommandInteraction) Options() []InteractionDataOption {
	return ci.Data.Options
}

// Option returns the top level option with the name, or nil.
func (ci *CommandInteraction) Option(name string) *InteractionDataOption {
	for i := range ci.Data.Options {
		if ci.Data.Options[i].Name == name {
			return &ci.Data.Options[i]
		}
	}

	return nil
}

// TargetID returns the user or message a context menu command was used on.
func (ci *CommandInteraction) TargetID() *Snowflake {
	return ci.Data.TargetID
}

// CreateInteractionResponse responds to an interaction.
func CreateInteractionResponse(s *Session, interactionID InteractionID, interactionToken string, response InteractionResponse) error {
	endpoint := EndpointInteractionResponse(interactionID.String(), interactionToken)

	err := s.Interface.FetchJJ(s, http.MethodPost, endpoint, response, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create interaction response: %w", err)
	}

	return nil
}
