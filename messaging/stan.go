package messaging

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/stan.go"
)

func init() {
	registerConsumer("stan", func() Consumer { return &StanConsumer{} })
}

type StanConsumer struct {
	NatsClient *nats.Conn `json:"-"`
	StanClient stan.Conn  `json:"-"`

	channel string
	cluster string
	durable string
}

func (stanMQ *StanConsumer) String() string {
	return "stan"
}

func (stanMQ *StanConsumer) Channel() string {
	return stanMQ.channel
}

func (stanMQ *StanConsumer) Cluster() string {
	return stanMQ.cluster
}

func (stanMQ *StanConsumer) Connect(ctx context.Context, clientName string, args map[string]interface{}) (err error) {
	address, ok := getString(args, "Address")
	if !ok {
		return errors.New("stanMQ connect: string type assertion failed for Address")
	}

	cluster, ok := getString(args, "Cluster")
	if !ok {
		return errors.New("stanMQ connect: string type assertion failed for Cluster")
	}

	channel, ok := getString(args, "Channel")
	if !ok {
		return errors.New("stanMQ connect: string type assertion failed for Channel")
	}

	stanMQ.cluster = cluster
	stanMQ.channel = channel
	stanMQ.durable = clientName

	useNatsConnection := true

	if useNatsConnectionStr, ok := GetEntry(args, "UseNATSConnection").(string); ok {
		if useNatsConnection, err = strconv.ParseBool(useNatsConnectionStr); err != nil {
			useNatsConnection = true
		}
	}

	var option stan.Option

	if useNatsConnection {
		stanMQ.NatsClient, err = nats.Connect(address)
		if err != nil {
			return fmt.Errorf("stanMQ connect nats: %w", err)
		}

		option = stan.NatsConn(stanMQ.NatsClient)
	} else {
		option = stan.NatsURL(address)
	}

	stanMQ.StanClient, err = stan.Connect(
		cluster,
		clientName,
		option,
	)
	if err != nil {
		return fmt.Errorf("stanMQ connect stan: %w", err)
	}

	return nil
}

func (stanMQ *StanConsumer) Subscribe(ctx context.Context, handler func(data []byte)) error {
	subscription, err := stanMQ.StanClient.Subscribe(
		stanMQ.channel,
		func(msg *stan.Msg) {
			handler(msg.Data)
		},
		stan.DurableName(stanMQ.durable),
	)
	if err != nil {
		return fmt.Errorf("stanMQ subscribe: %w", err)
	}

	<-ctx.Done()

	// Close keeps the durable subscription so no messages are missed on restart.
	_ = subscription.Close()

	return ctx.Err()
}

func (stanMQ *StanConsumer) Close() error {
	if stanMQ.StanClient != nil {
		if err := stanMQ.StanClient.Close(); err != nil {
			return fmt.Errorf("stanMQ close: %w", err)
		}
	}

	if stanMQ.NatsClient != nil {
		stanMQ.NatsClient.Close()
	}

	return nil
}
