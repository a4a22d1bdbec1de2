package discord_test

import (
	"testing"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStickerFormatFromID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       int
		expected discord.StickerFormat
	}{
		{1, discord.StickerFormatPNG},
		{2, discord.StickerFormatAPNG},
		{3, discord.StickerFormatLottie},
		{0, discord.StickerFormatUnknown},
		{4, discord.StickerFormatUnknown},
		{-1, discord.StickerFormatUnknown},
		{-42, discord.StickerFormatUnknown},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, discord.StickerFormatFromID(test.id), "id %d", test.id)
	}

	assert.Equal(t, -1, discord.StickerFormatFromID(99).ID())
	assert.Equal(t, 3, discord.StickerFormatLottie.ID())
	assert.Equal(t, "LOTTIE", discord.StickerFormatLottie.String())
	assert.Equal(t, "UNKNOWN", discord.StickerFormat(7).String())
}

func TestStickerFormatExtension(t *testing.T) {
	t.Parallel()

	for format, expected := range map[discord.StickerFormat]string{
		discord.StickerFormatPNG:    "png",
		discord.StickerFormatAPNG:   "apng",
		discord.StickerFormatLottie: "json",
	} {
		extension, err := format.Extension()
		require.NoError(t, err)
		assert.Equal(t, expected, extension)
	}

	extension, err := discord.StickerFormatUnknown.Extension()
	assert.ErrorIs(t, err, discord.ErrUnknownStickerFormat)
	assert.Empty(t, extension)
}

func TestStickerTypeFromID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, discord.StickerTypeStandard, discord.StickerTypeFromID(1))
	assert.Equal(t, discord.StickerTypeGuild, discord.StickerTypeFromID(2))
	assert.Equal(t, discord.StickerTypeUnknown, discord.StickerTypeFromID(0))
	assert.Equal(t, discord.StickerTypeUnknown, discord.StickerTypeFromID(3))
	assert.Equal(t, discord.StickerTypeUnknown, discord.StickerTypeFromID(-5))

	assert.Equal(t, 2, discord.StickerTypeGuild.ID())
	assert.Equal(t, "STANDARD", discord.StickerTypeStandard.String())
	assert.Equal(t, "GUILD", discord.StickerTypeGuild.String())
	assert.Equal(t, "UNKNOWN", discord.StickerTypeUnknown.String())
}

func TestNewSticker(t *testing.T) {
	t.Parallel()

	user := &discord.User{ID: 7, Username: "wumpus"}

	sticker := discord.NewSticker(
		10, 20, "Wave", "Wumpus waves",
		[]string{"wave", "hello", "wave"},
		discord.StickerTypeGuild, discord.StickerFormatAPNG,
		false, user, 4,
	)

	assert.Equal(t, discord.StickerID(10), sticker.ID())
	assert.Equal(t, discord.Snowflake(20), sticker.PackID())
	assert.Equal(t, "Wave", sticker.Name())
	assert.Equal(t, "Wumpus waves", sticker.Description())
	assert.Equal(t, []string{"hello", "wave"}, sticker.Tags())
	assert.True(t, sticker.HasTag("hello"))
	assert.False(t, sticker.HasTag("Wave"))
	assert.Equal(t, discord.StickerTypeGuild, sticker.Type())
	assert.Equal(t, discord.StickerFormatAPNG, sticker.FormatType())
	assert.False(t, sticker.Available())
	assert.Equal(t, -1, sticker.SortValue(), "sort value only applies to standard stickers")

	require.NotNil(t, sticker.User())
	assert.Equal(t, "wumpus", sticker.User().Username)

	// The sticker keeps its own copy of the user.
	user.Username = "changed"
	assert.Equal(t, "wumpus", sticker.User().Username)

	sticker.User().Username = "changed"
	assert.Equal(t, "wumpus", sticker.User().Username)
}

func TestStickerTagsAreCopied(t *testing.T) {
	t.Parallel()

	tags := []string{"b", "a"}
	sticker := discord.NewSticker(1, 2, "name", "", tags, discord.StickerTypeStandard, discord.StickerFormatPNG, true, nil, 3)

	tags[0] = "z"

	returned := sticker.Tags()
	returned[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, sticker.Tags())
	assert.Equal(t, 3, sticker.SortValue())
	assert.Nil(t, sticker.User())
	assert.Equal(t, "", sticker.Description())
}

func TestNewStickerNormalisesEnums(t *testing.T) {
	t.Parallel()

	sticker := discord.NewSticker(1, 2, "name", "", nil, discord.StickerType(5), discord.StickerFormat(9), true, nil, 3)

	assert.Equal(t, discord.StickerTypeUnknown, sticker.Type())
	assert.Equal(t, discord.StickerFormatUnknown, sticker.FormatType())
	assert.Equal(t, -1, sticker.SortValue())
	assert.Empty(t, sticker.Tags())
}

func TestStickerIconURL(t *testing.T) {
	t.Parallel()

	sticker := discord.NewSticker(749054660769218631, 0, "Wave", "", nil, discord.StickerTypeStandard, discord.StickerFormatLottie, true, nil, 1)

	iconURL, err := sticker.IconURL()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.discordapp.com/stickers/749054660769218631.json", iconURL)

	png := discord.NewSticker(5, 0, "Wave", "", nil, discord.StickerTypeGuild, discord.StickerFormatPNG, true, nil, -1)

	iconURL, err = png.IconURL()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.discordapp.com/stickers/5.png", iconURL)

	unknown := discord.NewSticker(5, 0, "Wave", "", nil, discord.StickerTypeGuild, discord.StickerFormatUnknown, true, nil, -1)

	iconURL, err = unknown.IconURL()
	assert.ErrorIs(t, err, discord.ErrUnknownStickerFormat)
	assert.Empty(t, iconURL)
}

func TestStickerUnmarshalStandard(t *testing.T) {
	t.Parallel()

	var sticker discord.Sticker

	err := sandwichjson.Unmarshal([]byte(`{
		"id": "749054660769218631",
		"pack_id": "847199849233514549",
		"name": "Wave",
		"description": "Wumpus waves hello",
		"tags": "wumpus, hello, wave",
		"type": 1,
		"format_type": 3,
		"available": true,
		"sort_value": 12
	}`), &sticker)
	require.NoError(t, err)

	assert.Equal(t, discord.StickerID(749054660769218631), sticker.ID())
	assert.Equal(t, discord.Snowflake(847199849233514549), sticker.PackID())
	assert.Equal(t, []string{"hello", "wave", "wumpus"}, sticker.Tags())
	assert.Equal(t, discord.StickerTypeStandard, sticker.Type())
	assert.Equal(t, discord.StickerFormatLottie, sticker.FormatType())
	assert.Equal(t, 12, sticker.SortValue())
	assert.True(t, sticker.Available())
	assert.Nil(t, sticker.User())
}

func TestStickerUnmarshalGuild(t *testing.T) {
	t.Parallel()

	var sticker discord.Sticker

	err := sandwichjson.Unmarshal([]byte(`{
		"id": "1",
		"guild_id": "5",
		"name": "Party",
		"description": null,
		"tags": "party",
		"type": 2,
		"format_type": 1,
		"user": {"id": "7", "username": "wumpus"},
		"sort_value": 3
	}`), &sticker)
	require.NoError(t, err)

	assert.Equal(t, discord.Snowflake(5), sticker.PackID())
	assert.Equal(t, "", sticker.Description())
	assert.Equal(t, -1, sticker.SortValue())
	assert.True(t, sticker.Available(), "available defaults to true")

	require.NotNil(t, sticker.User())
	assert.Equal(t, discord.UserID(7), sticker.User().ID)
}

func TestStickerUnmarshalUnknown(t *testing.T) {
	t.Parallel()

	var stickers []discord.Sticker

	err := sandwichjson.Unmarshal([]byte(`[{"id": "1", "name": "a", "tags": "", "type": 9, "format_type": 0}, {"id": "2", "name": "b", "tags": ""}]`), &stickers)
	require.NoError(t, err)
	require.Len(t, stickers, 2)

	for _, sticker := range stickers {
		assert.Equal(t, discord.StickerTypeUnknown, sticker.Type())
		assert.Equal(t, discord.StickerFormatUnknown, sticker.FormatType())

		_, err := sticker.IconURL()
		assert.ErrorIs(t, err, discord.ErrUnknownStickerFormat)
	}
}

func TestStickerUnmarshalUnparsableEnums(t *testing.T) {
	t.Parallel()

	var stickers []discord.Sticker

	err := sandwichjson.Unmarshal([]byte(`[
		{"id": "1", "name": "a", "tags": "", "type": 99999999999999999999, "format_type": 99999999999999999999},
		{"id": "2", "name": "b", "tags": "", "type": 1.0, "format_type": 2.5},
		{"id": "3", "name": "c", "tags": "", "type": -1e400, "format_type": null}
	]`), &stickers)
	require.NoError(t, err, "numbers outside the known ids never fail the decode")
	require.Len(t, stickers, 3)

	for _, sticker := range stickers {
		assert.Equal(t, discord.StickerTypeUnknown, sticker.Type(), sticker.Name())
		assert.Equal(t, discord.StickerFormatUnknown, sticker.FormatType(), sticker.Name())
	}

	var sticker discord.Sticker

	err = sandwichjson.Unmarshal([]byte(`{"id": "4", "name": "d", "tags": "", "type": 1, "format_type": "png"}`), &sticker)
	assert.Error(t, err, "values that are not numbers are rejected")
}

func TestStickerMarshal(t *testing.T) {
	t.Parallel()

	sticker := discord.NewSticker(1, 5, "Party", "", []string{"b", "a"}, discord.StickerTypeGuild, discord.StickerFormatPNG, false, &discord.User{ID: 7, Discriminator: "0"}, -1)

	data, err := sandwichjson.Marshal(sticker)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, sandwichjson.Unmarshal(data, &wire))

	assert.Equal(t, "1", wire["id"])
	assert.Equal(t, "5", wire["guild_id"])
	assert.NotContains(t, wire, "pack_id")
	assert.NotContains(t, wire, "sort_value")
	assert.Equal(t, "a,b", wire["tags"])
	assert.Equal(t, float64(2), wire["type"])
	assert.Equal(t, float64(1), wire["format_type"])
	assert.Equal(t, false, wire["available"])

	var decoded discord.Sticker
	require.NoError(t, sandwichjson.Unmarshal(data, &decoded))
	assert.Equal(t, sticker, decoded)
}

func TestStickerPackBannerURL(t *testing.T) {
	t.Parallel()

	bannerAssetID := discord.Snowflake(761773777976819732)

	pack := discord.StickerPack{BannerAssetID: &bannerAssetID}
	assert.Equal(t, "https://cdn.discordapp.com/app-assets/710982414301790216/store/761773777976819732.png", pack.BannerURL())

	assert.Equal(t, "", discord.StickerPack{}.BannerURL())
}
