package events

import (
	"context"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"go.uber.org/atomic"
)

// Responder sends the response of an interaction.
type Responder interface {
	Respond(ctx context.Context, interaction *discord.Interaction, response discord.InteractionResponse) error
}

// ResponderFunc allows a function to be used as a Responder.
type ResponderFunc func(ctx context.Context, interaction *discord.Interaction, response discord.InteractionResponse) error

func (f ResponderFunc) Respond(ctx context.Context, interaction *discord.Interaction, response discord.InteractionResponse) error {
	return f(ctx, interaction, response)
}

// NewRESTResponder responds to interactions through the interaction callback endpoint.
func NewRESTResponder(session *discord.Session) Responder {
	return ResponderFunc(func(ctx context.Context, interaction *discord.Interaction, response discord.InteractionResponse) error {
		requestSession := *session
		requestSession.Context = ctx

		return discord.CreateInteractionResponse(&requestSession, interaction.ID, interaction.Token, response)
	})
}

// InteractionEvent is implemented by every interaction event.
type InteractionEvent interface {
	Event

	Interaction() *discord.Interaction
	Respond(ctx context.Context, response discord.InteractionResponse) error
	Responded() bool
}

// GenericInteractionCreateEvent is dispatched for every interaction.
type GenericInteractionCreateEvent struct {
	*GenericEvent

	interaction *discord.Interaction
	responder   Responder
	responded   *atomic.Bool
}

func NewGenericInteractionCreateEvent(event *GenericEvent, interaction *discord.Interaction, responder Responder) *GenericInteractionCreateEvent {
	return &GenericInteractionCreateEvent{
		GenericEvent: event,
		interaction:  interaction,
		responder:    responder,
		responded:    atomic.NewBool(false),
	}
}

func (e *GenericInteractionCreateEvent) Interaction() *discord.Interaction {
	return e.interaction
}

func (e *GenericInteractionCreateEvent) InteractionID() discord.InteractionID {
	return e.interaction.ID
}

func (e *GenericInteractionCreateEvent) GuildID() *discord.GuildID {
	return e.interaction.GuildID
}

// User returns the user that triggered the interaction.
func (e *GenericInteractionCreateEvent) User() *discord.User {
	return e.interaction.Invoker()
}

// Respond sends the response of the interaction. Interactions can only be
// responded to once, later calls return ErrAlreadyResponded.
func (e *GenericInteractionCreateEvent) Respond(ctx context.Context, response discord.InteractionResponse) error {
	if e.responder == nil {
		return ErrNoResponder
	}

	if !e.responded.CompareAndSwap(false, true) {
		return ErrAlreadyResponded
	}

	if err := e.responder.Respond(ctx, e.interaction, response); err != nil {
		e.responded.Store(false)

		return err
	}

	return nil
}

// Reply responds with a message.
func (e *GenericInteractionCreateEvent) Reply(ctx context.Context, content string, ephemeral bool) error {
	data := &discord.InteractionCallbackData{
		Content: content,
	}

	if ephemeral {
		data.Flags = discord.MessageFlagEphemeral
	}

	return e.Respond(ctx, discord.InteractionResponse{
		Type: discord.InteractionCallbackTypeChannelMessageSource,
		Data: data,
	})
}

// Defer acknowledges the interaction, showing a loading state to the user.
func (e *GenericInteractionCreateEvent) Defer(ctx context.Context) error {
	return e.Respond(ctx, discord.InteractionResponse{
		Type: discord.InteractionCallbackTypeDeferredChannelMessageSource,
	})
}

func (e *GenericInteractionCreateEvent) Responded() bool {
	return e.responded.Load()
}
