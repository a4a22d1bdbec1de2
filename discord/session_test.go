package discord_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/atomic"
)

// newTestSession returns a session that sends requests to handler.
func newTestSession(t *testing.T, handler fasthttp.RequestHandler) *discord.Session {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()

	server := &fasthttp.Server{Handler: handler}

	go func() {
		_ = server.Serve(ln)
	}()

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	client := &fasthttp.Client{
		Dial: func(_ string) (net.Conn, error) {
			return ln.Dial()
		},
	}

	restInterface := discord.NewInterface(client, "http://discord.test/api", discord.APIVersion, "test-agent")

	return discord.NewSession(context.Background(), "Bot test-token", restInterface)
}

func TestGetSticker(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, fasthttp.MethodGet, string(ctx.Method()))
		assert.Equal(t, "/api/v10/stickers/749054660769218631", string(ctx.Path()))
		assert.Equal(t, "Bot test-token", string(ctx.Request.Header.Peek("Authorization")))
		assert.Equal(t, "test-agent", string(ctx.Request.Header.UserAgent()))

		ctx.Response.Header.Set("X-RateLimit-Remaining", "4")
		ctx.Response.Header.Set("X-RateLimit-Reset-After", "1.5")
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"id": "749054660769218631", "name": "Wave", "tags": "wave", "type": 1, "format_type": 3, "pack_id": "847199849233514549", "sort_value": 12}`)
	})

	sticker, err := discord.GetSticker(session, 749054660769218631)
	require.NoError(t, err)
	require.NotNil(t, sticker)

	assert.Equal(t, "Wave", sticker.Name())
	assert.Equal(t, discord.StickerFormatLottie, sticker.FormatType())
	assert.Equal(t, 12, sticker.SortValue())
}

func TestListStickerPacks(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, "/api/v10/sticker-packs", string(ctx.Path()))

		ctx.SetBodyString(`{"sticker_packs": [{"id": "847199849233514549", "name": "Wumpus Beyond", "sku_id": "1", "description": "Say hello", "banner_asset_id": "761773777976819732", "stickers": [{"id": "749054660769218631", "name": "Wave", "tags": "wave", "type": 1, "format_type": 3}]}]}`)
	})

	packs, err := discord.ListStickerPacks(session)
	require.NoError(t, err)
	require.Len(t, packs, 1)

	assert.Equal(t, "Wumpus Beyond", packs[0].Name)
	require.Len(t, packs[0].Stickers, 1)
	assert.Equal(t, "Wave", packs[0].Stickers[0].Name())
	assert.Contains(t, packs[0].BannerURL(), "761773777976819732.png")
}

func TestListGuildStickers(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/api/v10/guilds/5/stickers":
			ctx.SetBodyString(`[{"id": "1", "guild_id": "5", "name": "a", "tags": "a", "type": 2, "format_type": 1}]`)
		case "/api/v10/guilds/5/stickers/1":
			ctx.SetBodyString(`{"id": "1", "guild_id": "5", "name": "a", "tags": "a", "type": 2, "format_type": 1, "available": false}`)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	})

	stickers, err := discord.ListGuildStickers(session, 5)
	require.NoError(t, err)
	require.Len(t, stickers, 1)
	assert.Equal(t, discord.Snowflake(5), stickers[0].PackID())

	sticker, err := discord.GetGuildSticker(session, 5, 1)
	require.NoError(t, err)
	assert.False(t, sticker.Available())
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/api/v10/stickers/1":
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			ctx.SetBodyString(`{"message": "401: Unauthorized", "code": 0}`)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			ctx.SetBodyString(`{"message": "Unknown Sticker", "code": 10060}`)
		}
	})

	_, err := discord.GetSticker(session, 1)
	assert.ErrorIs(t, err, discord.ErrUnauthorized)

	_, err = discord.GetSticker(session, 2)

	var restError *discord.RestError
	require.ErrorAs(t, err, &restError)
	assert.Equal(t, fasthttp.StatusNotFound, restError.StatusCode)
	assert.Equal(t, "Unknown Sticker", restError.Message.Message)
	assert.Equal(t, int32(10060), restError.Message.Code)
}

func TestCreateInteractionResponse(t *testing.T) {
	t.Parallel()

	received := make(chan discord.InteractionResponse, 1)

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, fasthttp.MethodPost, string(ctx.Method()))
		assert.Equal(t, "/api/v10/interactions/1000/interaction-token/callback", string(ctx.Path()))
		assert.Equal(t, "application/json", string(ctx.Request.Header.ContentType()))

		var response discord.InteractionResponse
		assert.NoError(t, sandwichjson.Unmarshal(ctx.PostBody(), &response))

		received <- response

		ctx.SetStatusCode(fasthttp.StatusNoContent)
	})

	err := discord.CreateInteractionResponse(session, 1000, "interaction-token", discord.InteractionResponse{
		Type: discord.InteractionCallbackTypeChannelMessageSource,
		Data: &discord.InteractionCallbackData{Content: "hello", Flags: discord.MessageFlagEphemeral},
	})
	require.NoError(t, err)

	response := <-received
	assert.Equal(t, discord.InteractionCallbackTypeChannelMessageSource, response.Type)
	require.NotNil(t, response.Data)
	assert.Equal(t, "hello", response.Data.Content)
	assert.Equal(t, discord.MessageFlagEphemeral, response.Data.Flags)
}

func TestFetchRetriesRateLimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{
			name: "route",
			headers: map[string]string{
				"X-RateLimit-Remaining":   "0",
				"X-RateLimit-Reset-After": "0.05",
			},
		},
		{
			name: "global",
			headers: map[string]string{
				"X-RateLimit-Global": "true",
				"Retry-After":        "0.05",
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			requests := atomic.NewInt32(0)

			session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
				if requests.Inc() == 1 {
					for name, value := range tt.headers {
						ctx.Response.Header.Set(name, value)
					}

					ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
					ctx.SetBodyString(`{"message": "You are being rate limited.", "retry_after": 0.05, "global": false}`)

					return
				}

				ctx.SetBodyString(`{"id": "1", "name": "Wave", "tags": "wave", "type": 1, "format_type": 1}`)
			})

			start := time.Now()

			sticker, err := discord.GetSticker(session, 1)
			require.NoError(t, err)
			assert.Equal(t, "Wave", sticker.Name())

			assert.Equal(t, int32(2), requests.Load())
			assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond, "retry waits for the reset")
		})
	}
}

func TestFetchRateLimitedTwice(t *testing.T) {
	t.Parallel()

	requests := atomic.NewInt32(0)

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		requests.Inc()

		ctx.Response.Header.Set("X-RateLimit-Remaining", "0")
		ctx.Response.Header.Set("X-RateLimit-Reset-After", "0.01")
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
		ctx.SetBodyString(`{"message": "You are being rate limited.", "code": 0}`)
	})

	_, err := discord.GetSticker(session, 1)

	var restError *discord.RestError
	require.ErrorAs(t, err, &restError)
	assert.Equal(t, fasthttp.StatusTooManyRequests, restError.StatusCode)
	assert.Equal(t, int32(2), requests.Load(), "a 429 is only retried once")
}

func TestInteractionWebhooks(t *testing.T) {
	t.Parallel()

	received := make(chan string, 2)

	session := newTestSession(t, func(ctx *fasthttp.RequestCtx) {
		var params discord.WebhookMessageParams
		assert.NoError(t, sandwichjson.Unmarshal(ctx.PostBody(), &params))

		received <- string(ctx.Method()) + " " + string(ctx.Path()) + " " + params.Content

		ctx.SetBodyString(`{"id": "900", "channel_id": "300", "content": "` + params.Content + `"}`)
	})

	message, err := discord.EditOriginalInteractionResponse(session, 200, "interaction-token", discord.WebhookMessageParams{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, discord.MessageID(900), message.ID)
	assert.Equal(t, "edited", message.Content)
	assert.Equal(t, "PATCH /api/v10/webhooks/200/interaction-token/messages/@original edited", <-received)

	message, err = discord.CreateFollowupMessage(session, 200, "interaction-token", discord.NewWebhookMessageParams(
		&discord.InteractionCallbackData{Content: "followup", Flags: discord.MessageFlagEphemeral},
	))
	require.NoError(t, err)
	assert.Equal(t, discord.ChannelID(300), message.ChannelID)
	assert.Equal(t, "POST /api/v10/webhooks/200/interaction-token followup", <-received)
}
