package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestRouteBucket(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/stickers/749054660769218631":                            "/stickers/:id",
		"/sticker-packs":                                          "/sticker-packs",
		"/guilds/5/stickers":                                      "/guilds/5/stickers",
		"/guilds/5/stickers/10":                                   "/guilds/5/stickers/:id",
		"/channels/4/messages/9":                                  "/channels/4/messages/:id",
		"/interactions/1000/aW50ZXJhY3Rpb246MTAwMA/callback":      "/interactions/:id/:token/callback",
		"/interactions/2000/other-token/callback":                 "/interactions/:id/:token/callback",
		"/webhooks/200/aW50ZXJhY3Rpb246MTAwMA/messages/@original": "/webhooks/200/:token/messages/@original",
		"/webhooks/200/other-token":                               "/webhooks/200/:token",
	}

	for path, expected := range tests {
		assert.Equal(t, expected, routeBucket(path), path)
	}
}

func TestParseRateLimit(t *testing.T) {
	t.Parallel()

	var header fasthttp.ResponseHeader

	_, _, ok := parseRateLimit(&header)
	assert.False(t, ok)

	header.Set("X-RateLimit-Remaining", "3")
	header.Set("X-RateLimit-Reset-After", "0.25")

	remaining, resetAfter, ok := parseRateLimit(&header)
	assert.True(t, ok)
	assert.Equal(t, int32(3), remaining)
	assert.Equal(t, 250*time.Millisecond, resetAfter)

	header.Set("X-RateLimit-Remaining", "many")

	_, _, ok = parseRateLimit(&header)
	assert.False(t, ok)
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	var header fasthttp.ResponseHeader

	assert.Equal(t, defaultRetryAfter, parseRetryAfter(&header))

	header.Set("Retry-After", "2")
	assert.Equal(t, 2*time.Second, parseRetryAfter(&header))

	header.Set("X-RateLimit-Reset-After", "0.5")
	assert.Equal(t, 500*time.Millisecond, parseRetryAfter(&header), "reset after is preferred")
}
