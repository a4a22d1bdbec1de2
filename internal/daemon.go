package internal

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/events"
	"github.com/WelcomerTeam/Sandwich-Events/messaging"
	"github.com/WelcomerTeam/Sandwich-Events/pkg/accumulator"
	"github.com/WelcomerTeam/Sandwich-Events/state"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/xerrors"
)

// VERSION follows semantic versioning.
const VERSION = "1.0.0"

const (
	cacheEjectorInterval     = 1 * time.Minute
	prometheusGatherInterval = 10 * time.Second
	consumerRetryInterval    = 5 * time.Second

	// An hour of event counts in 10 second samples.
	accumulatorSamples  = 360
	accumulatorInterval = 10 * time.Second
)

// StickerDaemon consumes sandwich payloads, keeps sticker state and serves
// the interactions endpoint.
type StickerDaemon struct {
	Logger zerolog.Logger `json:"-"`

	StartTime time.Time `json:"start_time"`

	ctx    context.Context
	cancel func()

	Configuration *Configuration `json:"configuration"`

	Session    *discord.Session     `json:"-"`
	Store      state.StickerStore   `json:"-"`
	Dispatcher *events.Dispatcher   `json:"-"`
	Consumer   messaging.Consumer   `json:"-"`
	Registry   *prometheus.Registry `json:"-"`

	dedupe      *events.InMemoryDedupeProvider
	accumulator *accumulator.Accumulator
	redisClient redis.UniversalClient
	publicKey   ed25519.PublicKey

	interactionResponseTimeout time.Duration

	server *fasthttp.Server

	RouterHandler fasthttp.RequestHandler `json:"-"`

	wg sync.WaitGroup
}

// NewStickerDaemon creates the daemon from a validated configuration. restInterface
// can be nil to use the default discord interface.
func NewStickerDaemon(logger zerolog.Logger, configuration *Configuration, restInterface discord.RESTInterface) (sd *StickerDaemon, err error) {
	sd = &StickerDaemon{
		Logger:        logger,
		Configuration: configuration,
		Registry:      newRegistry(),
		dedupe:        events.NewInMemoryDedupeProvider(),
		accumulator:   accumulator.NewAccumulator("events", accumulatorSamples, accumulatorInterval),
	}

	sd.ctx, sd.cancel = context.WithCancel(context.Background())

	if restInterface == nil {
		restInterface = discord.NewBaseInterface()
	}

	restInterface.SetDebug(configuration.Debug)

	sd.Session = discord.NewSession(sd.ctx, configuration.Token, restInterface)

	switch configuration.State.Type {
	case StateTypeRedis:
		sd.redisClient = redis.NewClient(&redis.Options{
			Addr:     configuration.State.Address,
			Password: configuration.State.Password,
			DB:       configuration.State.DB,
		})

		sd.Store = state.NewRedisStore(sd.redisClient, configuration.State.Prefix)
	default:
		sd.Store = state.NewMemoryStore()
	}

	sd.interactionResponseTimeout = configuration.HTTP.ResponseTimeout
	if sd.interactionResponseTimeout <= 0 {
		sd.interactionResponseTimeout = defaultInteractionResponseTimeout
	}

	if configuration.HTTP.Enabled {
		sd.publicKey, err = configuration.DecodePublicKey()
		if err != nil {
			return nil, err
		}
	}

	if configuration.Consumer.Type != "" {
		sd.Consumer, err = messaging.NewConsumer(configuration.Consumer.Type)
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", err.Error(), ErrConfigurationValidateConsumer)
		}
	}

	sd.Dispatcher = events.NewDispatcher(events.DispatcherOptions{
		Store:          sd.Store,
		Session:        sd.Session,
		Dedupe:         sd.dedupe,
		Logger:         logger.With().Str("service", "dispatcher").Logger(),
		EventBlacklist: configuration.EventBlacklist,
		DedupeTTL:      configuration.DedupeTTL,
		Concurrency:    configuration.Concurrency,
	})

	sd.registerHandlers()

	sd.RouterHandler = sd.NewRestRouter()

	return sd, nil
}

// Open connects to the consumer and starts up any listeners.
func (sd *StickerDaemon) Open() error {
	sd.StartTime = time.Now().UTC()
	sd.Logger.Info().Msgf("Starting sandwich-events. Version %s", VERSION)

	if sd.redisClient != nil {
		if err := sd.redisClient.Ping(sd.ctx).Err(); err != nil {
			return xerrors.Errorf("failed to ping redis: %w", err)
		}
	}

	if sd.Consumer != nil {
		err := sd.Consumer.Connect(sd.ctx, sd.Configuration.Consumer.ClientName, sd.Configuration.Consumer.Configuration)
		if err != nil {
			return xerrors.Errorf("failed to connect to consumer: %w", err)
		}

		sd.wg.Add(1)

		go sd.consume()
	}

	sd.wg.Add(3)

	go sd.cacheEjector()
	go sd.prometheusGatherer()
	go func() {
		defer sd.wg.Done()

		sd.accumulator.Run(sd.ctx)
	}()

	if sd.Configuration.HTTP.Enabled {
		sd.server = &fasthttp.Server{
			Handler:      sd.HandleRequest,
			Name:         "sandwich-events",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		sd.wg.Add(1)

		go sd.setupHTTP()
	}

	return nil
}

// Close stops listeners and the consumer.
func (sd *StickerDaemon) Close() error {
	sd.Logger.Info().Msg("Closing sandwich-events")

	if sd.cancel != nil {
		sd.cancel()
	}

	if sd.server != nil {
		if err := sd.server.Shutdown(); err != nil {
			sd.Logger.Warn().Err(err).Msg("Failed to shutdown http server")
		}
	}

	if sd.Consumer != nil {
		if err := sd.Consumer.Close(); err != nil {
			sd.Logger.Warn().Err(err).Msg("Failed to close consumer")
		}
	}

	sd.wg.Wait()

	if sd.redisClient != nil {
		return sd.redisClient.Close()
	}

	return nil
}

func (sd *StickerDaemon) setupHTTP() {
	defer sd.wg.Done()

	sd.Logger.Info().Msgf("Serving http at %s", sd.Configuration.HTTP.Host)

	err := sd.server.ListenAndServe(sd.Configuration.HTTP.Host)
	if err != nil {
		sd.Logger.Error().Str("host", sd.Configuration.HTTP.Host).Err(err).Msg("Failed to serve http server")
	}
}

// consume subscribes to the consumer until the daemon closes, resubscribing on errors.
func (sd *StickerDaemon) consume() {
	defer sd.wg.Done()

	logger := sd.Logger.With().Str("consumer", sd.Consumer.String()).Str("channel", sd.Consumer.Channel()).Logger()

	for {
		logger.Info().Msg("Subscribing to consumer")

		err := sd.Consumer.Subscribe(sd.ctx, sd.handlePayload)
		if sd.ctx.Err() != nil {
			return
		}

		logger.Error().Err(err).Msg("Consumer subscription ended")

		select {
		case <-sd.ctx.Done():
			return
		case <-time.After(consumerRetryInterval):
		}
	}
}

func (sd *StickerDaemon) handlePayload(data []byte) {
	sandwichConsumedPayloads.WithLabelValues(sd.Consumer.String()).Inc()
	sd.accumulator.Increment()

	payload, err := events.DecodePayload(data)
	if err != nil {
		sd.Logger.Warn().Err(err).Msg("Failed to decode payload")

		return
	}

	err = sd.Dispatcher.Dispatch(sd.ctx, payload)
	if err != nil && !xerrors.Is(err, events.ErrNoDispatchHandler) {
		sd.Logger.Error().Err(err).Str("type", payload.Type).Msg("Failed to dispatch payload")
	}
}

// cacheEjector removes expired interaction ids.
func (sd *StickerDaemon) cacheEjector() {
	defer sd.wg.Done()

	t := time.NewTicker(cacheEjectorInterval)
	defer t.Stop()

	for {
		select {
		case <-sd.ctx.Done():
			return
		case <-t.C:
			ejectedDedupes := sd.dedupe.Cleanup()

			sd.Logger.Debug().
				Int("ejectedDedupes", ejectedDedupes).
				Int("dedupesTotal", sd.dedupe.Len()).
				Msg("Ejected cache")
		}
	}
}

func (sd *StickerDaemon) prometheusGatherer() {
	defer sd.wg.Done()

	t := time.NewTicker(prometheusGatherInterval)
	defer t.Stop()

	for {
		select {
		case <-sd.ctx.Done():
			return
		case <-t.C:
			sd.gatherStateMetrics()
		}
	}
}

func (sd *StickerDaemon) gatherStateMetrics() {
	count, err := sd.Store.Count(sd.ctx)
	if err != nil {
		sd.Logger.Warn().Err(err).Msg("Failed to count stickers")

		return
	}

	sandwichStateStickerCount.Set(float64(count))
}
