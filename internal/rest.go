package internal

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
	"github.com/WelcomerTeam/Sandwich-Events/state"
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"golang.org/x/xerrors"
)

const restRequestTimeout = 10 * time.Second

// BaseRestResponse is the response when returning rest requests.
type BaseRestResponse struct {
	Ok    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// StickerResponse is a sticker along with the url of its asset.
type StickerResponse struct {
	Sticker discord.Sticker `json:"sticker"`
	IconURL string          `json:"icon_url,omitempty"`
}

func NewStickerResponse(sticker discord.Sticker) StickerResponse {
	iconURL, _ := sticker.IconURL()

	return StickerResponse{
		Sticker: sticker,
		IconURL: iconURL,
	}
}

// NewRestRouter returns the handler of every http route.
func (sd *StickerDaemon) NewRestRouter() fasthttp.RequestHandler {
	r := router.New()
	r.SaveMatchedRoutePath = true

	r.POST("/interactions", sd.InteractionsEndpoint)
	r.GET("/stickers/{id}", sd.StickerEndpoint)
	r.GET("/guilds/{id}/stickers", sd.GuildStickersEndpoint)
	r.GET("/healthz", sd.HealthEndpoint)
	r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(sd.Registry, promhttp.HandlerOpts{}),
	))

	return r.Handler
}

// HandleRequest handles any incoming HTTP requests.
func (sd *StickerDaemon) HandleRequest(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	defer func() {
		sandwichHTTPRequests.WithLabelValues(
			routeLabel(ctx),
			strconv.Itoa(ctx.Response.StatusCode()),
		).Inc()

		sd.Logger.Debug().Msgf("%s %s %s %d %s",
			ctx.RemoteAddr(),
			ctx.Request.Header.Method(),
			ctx.Request.URI().Path(),
			ctx.Response.StatusCode(),
			time.Since(start).Round(time.Microsecond))
	}()

	sd.RouterHandler(ctx)
}

// routeLabel returns the registered route of the request so ids do not create new labels.
func routeLabel(ctx *fasthttp.RequestCtx) string {
	if route, ok := ctx.UserValue(router.MatchedRoutePathParam).(string); ok {
		return route
	}

	return "unknown"
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	EventsLastMinute int64  `json:"events_last_minute"`
	EventsLastHour   int64  `json:"events_last_hour"`
}

func (sd *StickerDaemon) HealthEndpoint(ctx *fasthttp.RequestCtx) {
	now := time.Now().UTC()
	samples := sd.accumulator.Samples()

	writeResponse(ctx, fasthttp.StatusOK, BaseRestResponse{
		Ok: true,
		Data: HealthResponse{
			Version:          VERSION,
			Uptime:           now.Sub(sd.StartTime).Round(time.Second).String(),
			EventsLastMinute: samples.Since(now.Add(-time.Minute)).Sum(),
			EventsLastHour:   samples.Since(now.Add(-time.Hour)).Sum(),
		},
	})
}

// StickerEndpoint returns a sticker from state, falling back to discord.
func (sd *StickerDaemon) StickerEndpoint(ctx *fasthttp.RequestCtx) {
	stickerID, ok := snowflakeParam(ctx, "id")
	if !ok {
		return
	}

	requestCtx, cancel := context.WithTimeout(sd.ctx, restRequestTimeout)
	defer cancel()

	sticker, err := sd.LookupSticker(requestCtx, discord.StickerID(stickerID))
	if err != nil {
		writeError(ctx, err)

		return
	}

	writeResponse(ctx, fasthttp.StatusOK, BaseRestResponse{
		Ok:   true,
		Data: NewStickerResponse(sticker),
	})
}

// GuildStickersEndpoint returns the stickers of a guild that are in state.
func (sd *StickerDaemon) GuildStickersEndpoint(ctx *fasthttp.RequestCtx) {
	guildID, ok := snowflakeParam(ctx, "id")
	if !ok {
		return
	}

	requestCtx, cancel := context.WithTimeout(sd.ctx, restRequestTimeout)
	defer cancel()

	stickers, err := sd.Store.GetGuildStickers(requestCtx, discord.GuildID(guildID))
	if err != nil {
		writeError(ctx, err)

		return
	}

	response := make([]StickerResponse, 0, len(stickers))
	for _, sticker := range stickers {
		response = append(response, NewStickerResponse(sticker))
	}

	writeResponse(ctx, fasthttp.StatusOK, BaseRestResponse{
		Ok:   true,
		Data: response,
	})
}

// LookupSticker returns a sticker from state. Stickers not in state are
// fetched from discord, which returns state.ErrStickerNotFound for unknown stickers.
func (sd *StickerDaemon) LookupSticker(ctx context.Context, stickerID discord.StickerID) (discord.Sticker, error) {
	sticker, err := sd.Store.GetSticker(ctx, stickerID)
	if err == nil {
		return sticker, nil
	}

	if !xerrors.Is(err, state.ErrStickerNotFound) {
		return discord.Sticker{}, err
	}

	session := *sd.Session
	session.Context = ctx

	fetched, err := discord.GetSticker(&session, stickerID)
	if err != nil {
		var restError *discord.RestError
		if xerrors.As(err, &restError) && restError.StatusCode == http.StatusNotFound {
			return discord.Sticker{}, state.ErrStickerNotFound
		}

		return discord.Sticker{}, err
	}

	if fetched == nil {
		return discord.Sticker{}, state.ErrStickerNotFound
	}

	return *fetched, nil
}

func snowflakeParam(ctx *fasthttp.RequestCtx, name string) (discord.Snowflake, bool) {
	value, _ := ctx.UserValue(name).(string)

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		writeResponse(ctx, fasthttp.StatusBadRequest, BaseRestResponse{
			Ok:    false,
			Error: "invalid " + name,
		})

		return 0, false
	}

	return discord.Snowflake(id), true
}

func writeError(ctx *fasthttp.RequestCtx, err error) {
	statusCode := fasthttp.StatusInternalServerError
	if xerrors.Is(err, state.ErrStickerNotFound) {
		statusCode = fasthttp.StatusNotFound
	}

	writeResponse(ctx, statusCode, BaseRestResponse{
		Ok:    false,
		Error: err.Error(),
	})
}

func writeResponse(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.SetContentType("application/json;charset=UTF-8")
	ctx.SetStatusCode(statusCode)

	if err := sandwichjson.MarshalToWriter(ctx, response); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}
