package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/pkg/limiter"
	"github.com/WelcomerTeam/Sandwich-Events/state"
	"github.com/rs/zerolog"
	"github.com/savsgio/gotils/strconv"
	"github.com/savsgio/gotils/strings"
	"go.uber.org/atomic"
)

const (
	defaultConcurrency = 16
	defaultDedupeTTL   = 5 * time.Minute
)

// Handler is called with every event a Dispatcher emits.
type Handler func(ctx context.Context, event Event) error

type DispatcherOptions struct {
	Store   state.StickerStore
	Session *discord.Session
	Dedupe  DedupeProvider

	Logger zerolog.Logger

	EventBlacklist []string

	// DedupeTTL is how long an interaction id is remembered for.
	DedupeTTL time.Duration

	// Concurrency is how many events can run their handlers at once.
	Concurrency int
}

// Dispatcher decodes sandwich payloads into events and passes them to handlers.
type Dispatcher struct {
	Logger zerolog.Logger

	store     state.StickerStore
	session   *discord.Session
	responder Responder
	dedupe    DedupeProvider
	dedupeTTL time.Duration

	limiter *limiter.ConcurrencyLimiter

	handlersMu sync.RWMutex
	handlers   []Handler

	eventBlacklistMu sync.RWMutex
	eventBlacklist   []string

	responseNumber *atomic.Int64
}

// NewDispatcher creates a dispatcher. A memory store is used when no store is
// provided and interaction ids are not deduplicated when no provider is set.
func NewDispatcher(options DispatcherOptions) *Dispatcher {
	if options.Store == nil {
		options.Store = state.NewMemoryStore()
	}

	if options.Dedupe == nil {
		options.Dedupe = NewNoopDedupeProvider()
	}

	if options.DedupeTTL <= 0 {
		options.DedupeTTL = defaultDedupeTTL
	}

	if options.Concurrency <= 0 {
		options.Concurrency = defaultConcurrency
	}

	d := &Dispatcher{
		Logger:         options.Logger,
		store:          options.Store,
		session:        options.Session,
		dedupe:         options.Dedupe,
		dedupeTTL:      options.DedupeTTL,
		limiter:        limiter.NewConcurrencyLimiter("dispatch", options.Concurrency),
		eventBlacklist: options.EventBlacklist,
		responseNumber: atomic.NewInt64(0),
	}

	if options.Session != nil {
		d.responder = NewRESTResponder(options.Session)
	}

	return d
}

// Store returns the sticker store the dispatcher keeps updated.
func (d *Dispatcher) Store() state.StickerStore {
	return d.store
}

// Session returns the session used for REST requests. This may be nil.
func (d *Dispatcher) Session() *discord.Session {
	return d.session
}

// AddHandler registers a handler that receives every event.
func (d *Dispatcher) AddHandler(handler Handler) {
	d.handlersMu.Lock()
	d.handlers = append(d.handlers, handler)
	d.handlersMu.Unlock()
}

// Handle registers a handler that only receives events of type E. E can be an
// interface such as CommandEvent to receive every event that implements it.
func Handle[E Event](d *Dispatcher, handler func(ctx context.Context, event E) error) {
	d.AddHandler(func(ctx context.Context, event Event) error {
		typed, ok := event.(E)
		if !ok {
			return nil
		}

		return handler(ctx, typed)
	})
}

// SetEventBlacklist replaces the event types that are ignored.
func (d *Dispatcher) SetEventBlacklist(eventBlacklist []string) {
	d.eventBlacklistMu.Lock()
	d.eventBlacklist = eventBlacklist
	d.eventBlacklistMu.Unlock()
}

func (d *Dispatcher) isBlacklisted(eventType string) bool {
	d.eventBlacklistMu.RLock()
	defer d.eventBlacklistMu.RUnlock()

	return strings.Include(d.eventBlacklist, eventType)
}

// Dispatch decodes a payload and runs the handlers of the events it produces.
// Interactions are responded to through the REST session.
func (d *Dispatcher) Dispatch(ctx context.Context, payload *SandwichPayload) error {
	return d.DispatchWithResponder(ctx, payload, d.responder)
}

// DispatchWithResponder is Dispatch with a custom responder for interactions.
func (d *Dispatcher) DispatchWithResponder(ctx context.Context, payload *SandwichPayload, responder Responder) error {
	if payload.Op != discord.GatewayOpDispatch {
		sandwichDiscardedEvents.WithLabelValues(payload.Type, "not_dispatch").Inc()

		return nil
	}

	if d.isBlacklisted(payload.Type) {
		sandwichDiscardedEvents.WithLabelValues(payload.Type, "blacklisted").Inc()

		return nil
	}

	decoder, ok := dispatchDecoders[payload.Type]
	if !ok {
		sandwichDiscardedEvents.WithLabelValues(payload.Type, "no_handler").Inc()

		return ErrNoDispatchHandler
	}

	start := time.Now()

	sandwichEventInflightCount.Inc()
	defer sandwichEventInflightCount.Dec()

	events, err := decoder(ctx, d, payload, responder)
	if err != nil {
		sandwichDiscardedEvents.WithLabelValues(payload.Type, "decode_error").Inc()

		d.Logger.Error().Err(err).
			Str("type", payload.Type).
			Str("data", strconv.B2S(payload.Data)).
			Msg("Encountered error whilst decoding event")

		return fmt.Errorf("failed to decode %s: %w", payload.Type, err)
	}

	for _, event := range events {
		sandwichEventCount.WithLabelValues(event.Type()).Inc()

		if err := d.emit(ctx, event); err != nil {
			return err
		}
	}

	sandwichDispatchDuration.WithLabelValues(payload.Type).Observe(time.Since(start).Seconds())

	return nil
}

// DispatchInteraction dispatches an interaction received outside of a broker,
// such as from the interactions endpoint.
func (d *Dispatcher) DispatchInteraction(ctx context.Context, data []byte, responder Responder) error {
	return d.DispatchWithResponder(ctx, &SandwichPayload{
		Op:   discord.GatewayOpDispatch,
		Type: discord.DiscordEventInteractionCreate,
		Data: data,
	}, responder)
}

func (d *Dispatcher) newGenericEvent(payload *SandwichPayload) *GenericEvent {
	return NewGenericEvent(d, payload.Type, d.responseNumber.Inc(), payload.Metadata)
}

// emit runs every handler with the event. Handler errors and panics are
// logged and do not stop other handlers from running.
func (d *Dispatcher) emit(ctx context.Context, event Event) error {
	ticket, err := d.limiter.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for handler slot: %w", err)
	}
	defer d.limiter.FreeTicket(ticket)

	d.handlersMu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.handlersMu.RUnlock()

	for _, handler := range handlers {
		if err := d.runHandler(ctx, handler, event); err != nil {
			sandwichHandlerErrors.WithLabelValues(event.Type()).Inc()

			d.Logger.Warn().Err(err).
				Str("type", event.Type()).
				Int64("response_number", event.ResponseNumber()).
				Msg("Handler returned error")
		}
	}

	return nil
}

func (d *Dispatcher) runHandler(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return handler(ctx, event)
}
