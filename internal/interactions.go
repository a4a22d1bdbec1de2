package internal

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"sync"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
	"github.com/valyala/fasthttp"
)

const (
	// Discord waits 3 seconds for the response of an interaction request.
	defaultInteractionResponseTimeout = 2500 * time.Millisecond

	// Interaction tokens can be used for 15 minutes, so handlers can keep
	// running after the request has been answered.
	interactionTokenLifetime = 15 * time.Minute
)

const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"
)

// VerifyInteractionRequest checks the request was signed by discord with the
// key of the application.
func VerifyInteractionRequest(publicKey ed25519.PublicKey, ctx *fasthttp.RequestCtx) error {
	signature, err := hex.DecodeString(string(ctx.Request.Header.Peek(headerSignature)))
	if err != nil || len(signature) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}

	timestamp := ctx.Request.Header.Peek(headerTimestamp)
	if len(timestamp) == 0 {
		return ErrInvalidSignature
	}

	body := ctx.PostBody()

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)

	if !ed25519.Verify(publicKey, message, signature) {
		return ErrInvalidSignature
	}

	return nil
}

// httpResponder writes the first response of an interaction into the
// response of the request that delivered it. Once the request has been
// answered with a deferred response, messages edit the original response
// through the interaction webhook instead.
type httpResponder struct {
	session   *discord.Session
	responses chan discord.InteractionResponse

	mu      sync.Mutex
	expired bool
}

func newHTTPResponder(session *discord.Session) *httpResponder {
	return &httpResponder{
		session:   session,
		responses: make(chan discord.InteractionResponse, 1),
	}
}

func (r *httpResponder) Respond(ctx context.Context, interaction *discord.Interaction, response discord.InteractionResponse) error {
	r.mu.Lock()

	if !r.expired {
		defer r.mu.Unlock()

		select {
		case r.responses <- response:
			return nil
		default:
			return ErrInteractionResponseExpired
		}
	}

	r.mu.Unlock()

	return r.followup(ctx, interaction, response)
}

// followup applies a response after the request was answered with a deferred response.
func (r *httpResponder) followup(ctx context.Context, interaction *discord.Interaction, response discord.InteractionResponse) error {
	switch response.Type {
	case discord.InteractionCallbackTypeDeferredChannelMessageSource:
		return nil
	case discord.InteractionCallbackTypeChannelMessageSource:
	default:
		return ErrInteractionResponseExpired
	}

	if r.session == nil {
		return ErrInteractionResponseExpired
	}

	session := *r.session
	session.Context = ctx

	_, err := discord.EditOriginalInteractionResponse(&session, interaction.ApplicationID, interaction.Token, discord.NewWebhookMessageParams(response.Data))
	if err != nil {
		return err
	}

	sandwichInteractionResponses.WithLabelValues("followup").Inc()

	return nil
}

// expire stops any further responses and returns a response if one was sent.
func (r *httpResponder) expire() (discord.InteractionResponse, bool) {
	r.mu.Lock()
	r.expired = true
	r.mu.Unlock()

	select {
	case response := <-r.responses:
		return response, true
	default:
		return discord.InteractionResponse{}, false
	}
}

// InteractionsEndpoint handles interactions posted by discord. Handlers have
// until shortly before discord gives up to respond, otherwise the interaction
// is deferred and later messages edit the deferred response.
func (sd *StickerDaemon) InteractionsEndpoint(ctx *fasthttp.RequestCtx) {
	if err := VerifyInteractionRequest(sd.publicKey, ctx); err != nil {
		writeResponse(ctx, fasthttp.StatusUnauthorized, BaseRestResponse{
			Ok:    false,
			Error: err.Error(),
		})

		return
	}

	var interaction discord.Interaction

	if err := sandwichjson.Unmarshal(ctx.PostBody(), &interaction); err != nil {
		writeResponse(ctx, fasthttp.StatusBadRequest, BaseRestResponse{
			Ok:    false,
			Error: err.Error(),
		})

		return
	}

	if interaction.Type == discord.InteractionTypePing {
		sandwichInteractionResponses.WithLabelValues("pong").Inc()

		writeResponse(ctx, fasthttp.StatusOK, discord.InteractionResponse{
			Type: discord.InteractionCallbackTypePong,
		})

		return
	}

	sd.accumulator.Increment()

	// The body is reused once the request returns and the dispatch can outlive it.
	body := append([]byte(nil), ctx.PostBody()...)
	responder := newHTTPResponder(sd.Session)
	done := make(chan struct{})

	sd.wg.Add(1)

	go func() {
		defer sd.wg.Done()
		defer close(done)

		dispatchCtx, cancel := context.WithTimeout(sd.ctx, interactionTokenLifetime)
		defer cancel()

		if err := sd.Dispatcher.DispatchInteraction(dispatchCtx, body, responder); err != nil {
			sd.Logger.Warn().Err(err).Str("interaction_id", interaction.ID.String()).Msg("Failed to dispatch interaction")
		}
	}()

	timer := time.NewTimer(sd.interactionResponseTimeout)
	defer timer.Stop()

	select {
	case response := <-responder.responses:
		responder.expire()
		sandwichInteractionResponses.WithLabelValues("handler").Inc()

		writeResponse(ctx, fasthttp.StatusOK, response)
	case <-done:
		sd.writePendingOrDeferred(ctx, responder)
	case <-timer.C:
		sd.writePendingOrDeferred(ctx, responder)
	}
}

// writePendingOrDeferred answers with a response that was sent while the
// window closed, or defers the interaction.
func (sd *StickerDaemon) writePendingOrDeferred(ctx *fasthttp.RequestCtx, responder *httpResponder) {
	if response, ok := responder.expire(); ok {
		sandwichInteractionResponses.WithLabelValues("handler").Inc()

		writeResponse(ctx, fasthttp.StatusOK, response)

		return
	}

	sandwichInteractionResponses.WithLabelValues("deferred").Inc()

	writeResponse(ctx, fasthttp.StatusOK, discord.InteractionResponse{
		Type: discord.InteractionCallbackTypeDeferredChannelMessageSource,
	})
}
