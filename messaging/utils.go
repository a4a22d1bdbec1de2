package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownConsumer = errors.New("unknown consumer type")

// Consumer receives payloads produced by sandwich from a message broker.
type Consumer interface {
	String() string
	Channel() string

	Connect(ctx context.Context, clientName string, args map[string]interface{}) error

	// Subscribe calls handler with the body of every message received. It
	// blocks until the context is done or the subscription fails.
	Subscribe(ctx context.Context, handler func(data []byte)) error

	Close() error
}

// Consumers lists all consumer types that are available.
var Consumers = []string{}

var consumerConstructors = map[string]func() Consumer{}

func registerConsumer(name string, constructor func() Consumer) {
	Consumers = append(Consumers, name)
	consumerConstructors[name] = constructor
}

// NewConsumer returns an unconnected consumer of the type.
func NewConsumer(consumerType string) (Consumer, error) {
	constructor, ok := consumerConstructors[strings.ToLower(consumerType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConsumer, consumerType)
	}

	return constructor(), nil
}

// GetEntry returns the first match from a map and handles keys as non case sensitive.
func GetEntry(m map[string]interface{}, key string) interface{} {
	key = strings.ToLower(key)
	for i, k := range m {
		if strings.ToLower(i) == key {
			return k
		}
	}

	return nil
}

func getString(args map[string]interface{}, key string) (string, bool) {
	value, ok := GetEntry(args, key).(string)

	return value, ok && value != ""
}
