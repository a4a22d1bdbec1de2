package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

func init() {
	registerConsumer("jetstream", func() Consumer { return &JetStreamConsumer{} })
}

type JetStreamConsumer struct {
	NatsClient      *nats.Conn          `json:"-"`
	JetStreamClient jetstream.JetStream `json:"-"`
	JetStreamStream jetstream.Stream    `json:"-"`

	channel string
	durable string
}

func (jetstreamMQ *JetStreamConsumer) String() string {
	return "jetstream"
}

func (jetstreamMQ *JetStreamConsumer) Channel() string {
	return jetstreamMQ.channel
}

// Connect connects to nats and looks up the stream sandwich publishes to. The
// stream is created by the producer so it is not created here.
func (jetstreamMQ *JetStreamConsumer) Connect(ctx context.Context, clientName string, args map[string]interface{}) (err error) {
	address, ok := getString(args, "Address")
	if !ok {
		return errors.New("jetstreamMQ connect: string type assertion failed for Address")
	}

	channel, ok := getString(args, "Channel")
	if !ok {
		return errors.New("jetstreamMQ connect: string type assertion failed for Channel")
	}

	jetstreamMQ.channel = channel
	jetstreamMQ.durable = clientName

	jetstreamMQ.NatsClient, err = nats.Connect(address, nats.Name(clientName))
	if err != nil {
		return fmt.Errorf("jetstreamMQ connect nats: %w", err)
	}

	jetstreamMQ.JetStreamClient, err = jetstream.New(jetstreamMQ.NatsClient)
	if err != nil {
		return fmt.Errorf("jetstreamMQ new: %w", err)
	}

	jetstreamMQ.JetStreamStream, err = jetstreamMQ.JetStreamClient.Stream(ctx, channel)
	if err != nil {
		return fmt.Errorf("jetstreamMQ stream: %w", err)
	}

	return nil
}

func (jetstreamMQ *JetStreamConsumer) Subscribe(ctx context.Context, handler func(data []byte)) error {
	consumer, err := jetstreamMQ.JetStreamStream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       jetstreamMQ.durable,
		FilterSubject: jetstreamMQ.channel + ".*",
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return fmt.Errorf("jetstreamMQ create consumer: %w", err)
	}

	consumeContext, err := consumer.Consume(func(msg jetstream.Msg) {
		handler(msg.Data())

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("jetstreamMQ consume: %w", err)
	}

	<-ctx.Done()
	consumeContext.Stop()

	return ctx.Err()
}

func (jetstreamMQ *JetStreamConsumer) Close() error {
	if jetstreamMQ.NatsClient != nil {
		jetstreamMQ.NatsClient.Close()
	}

	return nil
}
