package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
	"golang.org/x/xerrors"
)

func init() {
	registerConsumer("kafka", func() Consumer { return &KafkaConsumer{} })
}

type KafkaConsumer struct {
	KafkaClient *kafka.Reader

	channel string
}

func (kafkaMQ *KafkaConsumer) String() string {
	return "kafka"
}

func (kafkaMQ *KafkaConsumer) Channel() string {
	return kafkaMQ.channel
}

// Connect creates a reader for the channel topic. Address can contain
// multiple brokers separated by commas.
func (kafkaMQ *KafkaConsumer) Connect(ctx context.Context, clientName string, args map[string]interface{}) (err error) {
	address, ok := getString(args, "Address")
	if !ok {
		return xerrors.New("kafkaMQ connect: string type assertion failed for Address")
	}

	channel, ok := getString(args, "Channel")
	if !ok {
		return xerrors.New("kafkaMQ connect: string type assertion failed for Channel")
	}

	groupID, ok := getString(args, "GroupID")
	if !ok {
		groupID = clientName
	}

	kafkaMQ.channel = channel

	kafkaMQ.KafkaClient = kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(address, ","),
		GroupID: groupID,
		Topic:   channel,
	})

	return nil
}

func (kafkaMQ *KafkaConsumer) Subscribe(ctx context.Context, handler func(data []byte)) error {
	for {
		msg, err := kafkaMQ.KafkaClient.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}

			return fmt.Errorf("kafkaMQ read message: %w", err)
		}

		handler(msg.Value)
	}
}

func (kafkaMQ *KafkaConsumer) Close() error {
	if kafkaMQ.KafkaClient != nil {
		return kafkaMQ.KafkaClient.Close()
	}

	return nil
}
