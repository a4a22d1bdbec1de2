package events_test

import (
	"testing"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/events"
	"github.com/stretchr/testify/assert"
)

type fakeCommandInteraction struct {
	channel   *discord.Channel
	name      string
	commandID discord.ApplicationCommandID

	calls map[string]int
}

func (f *fakeCommandInteraction) Channel() *discord.Channel {
	f.calls["Channel"]++

	return f.channel
}

func (f *fakeCommandInteraction) Name() string {
	f.calls["Name"]++

	return f.name
}

func (f *fakeCommandInteraction) CommandID() discord.ApplicationCommandID {
	f.calls["CommandID"]++

	return f.commandID
}

func newInteractionEvent(interaction *discord.Interaction) *events.GenericInteractionCreateEvent {
	return events.NewGenericInteractionCreateEvent(
		events.NewGenericEvent(nil, discord.DiscordEventInteractionCreate, 1, events.SandwichMetadata{}),
		interaction,
		nil,
	)
}

func TestGenericCommandEventForwards(t *testing.T) {
	t.Parallel()

	channel := &discord.Channel{ID: 4, Name: "general"}
	fake := &fakeCommandInteraction{
		channel:   channel,
		name:      "sticker",
		commandID: 6000,
		calls:     map[string]int{},
	}

	event := events.NewGenericCommandEvent(newInteractionEvent(&discord.Interaction{ID: 1}), fake)

	assert.Same(t, channel, event.Channel())
	assert.Equal(t, "sticker", event.Name())
	assert.Equal(t, discord.ApplicationCommandID(6000), event.CommandID())

	assert.Equal(t, map[string]int{"Channel": 1, "Name": 1, "CommandID": 1}, fake.calls)

	// Values are not cached by the event.
	fake.name = "renamed"
	assert.Equal(t, "renamed", event.Name())
	assert.Equal(t, 2, fake.calls["Name"])
}

func TestGenericCommandEventNilChannel(t *testing.T) {
	t.Parallel()

	fake := &fakeCommandInteraction{calls: map[string]int{}}
	event := events.NewGenericCommandEvent(newInteractionEvent(&discord.Interaction{ID: 1}), fake)

	assert.Nil(t, event.Channel())
	assert.Equal(t, "", event.Name())
	assert.Equal(t, discord.ApplicationCommandID(0), event.CommandID())
}

func TestGenericCommandEventInteraction(t *testing.T) {
	t.Parallel()

	guildID := discord.GuildID(3)
	interaction := &discord.Interaction{
		ID:      1,
		GuildID: &guildID,
		Member:  &discord.GuildMember{User: &discord.User{ID: 5}},
	}

	event := events.NewGenericCommandEvent(newInteractionEvent(interaction), &fakeCommandInteraction{calls: map[string]int{}})

	assert.Same(t, interaction, event.Interaction())
	assert.Equal(t, discord.InteractionID(1), event.InteractionID())
	assert.Equal(t, &guildID, event.GuildID())
	assert.Equal(t, discord.UserID(5), event.User().ID)
	assert.Equal(t, discord.DiscordEventInteractionCreate, event.Type())
	assert.Equal(t, int64(1), event.ResponseNumber())
	assert.False(t, event.Responded())
}
