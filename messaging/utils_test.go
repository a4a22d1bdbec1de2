package messaging_test

import (
	"context"
	"testing"

	"github.com/WelcomerTeam/Sandwich-Events/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntry(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{
		"Address": "127.0.0.1:4222",
		"channel": "sandwich",
	}

	assert.Equal(t, "127.0.0.1:4222", messaging.GetEntry(args, "address"))
	assert.Equal(t, "sandwich", messaging.GetEntry(args, "CHANNEL"))
	assert.Nil(t, messaging.GetEntry(args, "cluster"))
	assert.Nil(t, messaging.GetEntry(nil, "address"))
}

func TestNewConsumer(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []string{"jetstream", "stan", "kafka", "redis"}, messaging.Consumers)

	for _, consumerType := range []string{"jetstream", "JetStream", "stan", "kafka", "REDIS"} {
		consumer, err := messaging.NewConsumer(consumerType)
		require.NoError(t, err, consumerType)
		assert.Contains(t, messaging.Consumers, consumer.String())
		assert.Empty(t, consumer.Channel(), "unconnected consumers have no channel")
		assert.NoError(t, consumer.Close(), "closing an unconnected consumer is a no-op")
	}

	consumer, err := messaging.NewConsumer("rabbitmq")
	assert.ErrorIs(t, err, messaging.ErrUnknownConsumer)
	assert.Nil(t, consumer)
}

func TestConnectMissingArguments(t *testing.T) {
	t.Parallel()

	for _, consumerType := range messaging.Consumers {
		consumer, err := messaging.NewConsumer(consumerType)
		require.NoError(t, err)

		err = consumer.Connect(context.Background(), "sandwich-events", map[string]interface{}{})
		assert.Error(t, err, "%s requires an address", consumerType)

		err = consumer.Connect(context.Background(), "sandwich-events", map[string]interface{}{
			"Address": "127.0.0.1:1",
		})
		assert.Error(t, err, "%s requires a channel", consumerType)
	}
}

func TestKafkaConnect(t *testing.T) {
	t.Parallel()

	consumer, err := messaging.NewConsumer("kafka")
	require.NoError(t, err)

	// Readers connect lazily so no broker is needed.
	err = consumer.Connect(context.Background(), "sandwich-events", map[string]interface{}{
		"address": "127.0.0.1:1,127.0.0.1:2",
		"channel": "sandwich",
	})
	require.NoError(t, err)

	assert.Equal(t, "sandwich", consumer.Channel())
	assert.NoError(t, consumer.Close())
}
