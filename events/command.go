package events

import "github.com/WelcomerTeam/Sandwich-Events/discord"

// CommandInteraction is the information shared by every application command.
type CommandInteraction interface {
	// Channel returns the channel the command was used in.
	Channel() *discord.Channel

	// Name returns the name of the command.
	Name() string

	// CommandID returns the id of the command.
	CommandID() discord.ApplicationCommandID
}

// CommandEvent is implemented by every command event.
type CommandEvent interface {
	InteractionEvent
	CommandInteraction
}

var (
	_ CommandInteraction = (*discord.CommandInteraction)(nil)
	_ CommandEvent       = (*GenericCommandEvent)(nil)
	_ CommandEvent       = (*SlashCommandEvent)(nil)
	_ CommandEvent       = (*ContextCommandEvent)(nil)
)

// GenericCommandEvent indicates that a command was used in a channel.
//
// Interactions are only received over the gateway when the application does
// not have an interactions endpoint url set.
type GenericCommandEvent struct {
	*GenericInteractionCreateEvent

	commandInteraction CommandInteraction
}

func NewGenericCommandEvent(event *GenericInteractionCreateEvent, commandInteraction CommandInteraction) *GenericCommandEvent {
	return &GenericCommandEvent{
		GenericInteractionCreateEvent: event,
		commandInteraction:            commandInteraction,
	}
}

func (e *GenericCommandEvent) Channel() *discord.Channel {
	return e.commandInteraction.Channel()
}

func (e *GenericCommandEvent) Name() string {
	return e.commandInteraction.Name()
}

func (e *GenericCommandEvent) CommandID() discord.ApplicationCommandID {
	return e.commandInteraction.CommandID()
}

// SlashCommandEvent indicates that a slash command was used.
type SlashCommandEvent struct {
	*GenericCommandEvent

	command *discord.CommandInteraction
}

func NewSlashCommandEvent(event *GenericInteractionCreateEvent, command *discord.CommandInteraction) *SlashCommandEvent {
	return &SlashCommandEvent{
		GenericCommandEvent: NewGenericCommandEvent(event, command),
		command:             command,
	}
}

func (e *SlashCommandEvent) Options() []discord.InteractionDataOption {
	return e.command.Options()
}

// Option returns the option with the name, or nil if the user did not provide it.
func (e *SlashCommandEvent) Option(name string) *discord.InteractionDataOption {
	return e.command.Option(name)
}

// ContextCommandEvent indicates that a user or message context menu command was used.
type ContextCommandEvent struct {
	*GenericCommandEvent

	command *discord.CommandInteraction
}

func NewContextCommandEvent(event *GenericInteractionCreateEvent, command *discord.CommandInteraction) *ContextCommandEvent {
	return &ContextCommandEvent{
		GenericCommandEvent: NewGenericCommandEvent(event, command),
		command:             command,
	}
}

// CommandType returns if the command was used on a user or a message.
func (e *ContextCommandEvent) CommandType() discord.ApplicationCommandType {
	return e.command.CommandType()
}

// TargetID returns the id of the user or message the command was used on.
func (e *ContextCommandEvent) TargetID() discord.Snowflake {
	if targetID := e.command.TargetID(); targetID != nil {
		return *targetID
	}

	return 0
}
