package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

func init() {
	registerConsumer("redis", func() Consumer { return &RedisConsumer{} })
}

// RedisConsumer receives payloads published to a redis pub/sub channel.
type RedisConsumer struct {
	RedisClient *redis.Client `json:"-"`

	channel string
}

func (redisMQ *RedisConsumer) String() string {
	return "redis"
}

func (redisMQ *RedisConsumer) Channel() string {
	return redisMQ.channel
}

func (redisMQ *RedisConsumer) Connect(ctx context.Context, clientName string, args map[string]interface{}) error {
	address, ok := getString(args, "Address")
	if !ok {
		return errors.New("redisMQ connect: string type assertion failed for Address")
	}

	channel, ok := getString(args, "Channel")
	if !ok {
		return errors.New("redisMQ connect: string type assertion failed for Channel")
	}

	password, _ := getString(args, "Password")

	redisMQ.channel = channel
	redisMQ.RedisClient = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
	})

	if err := redisMQ.RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redisMQ ping: %w", err)
	}

	return nil
}

func (redisMQ *RedisConsumer) Subscribe(ctx context.Context, handler func(data []byte)) error {
	pubsub := redisMQ.RedisClient.Subscribe(ctx, redisMQ.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redisMQ subscribe: %w", err)
	}

	channel := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-channel:
			if !ok {
				return errors.New("redisMQ subscription closed")
			}

			handler([]byte(msg.Payload))
		}
	}
}

func (redisMQ *RedisConsumer) Close() error {
	if redisMQ.RedisClient != nil {
		return redisMQ.RedisClient.Close()
	}

	return nil
}
