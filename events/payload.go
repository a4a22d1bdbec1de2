package events

import (
	"github.com/WelcomerTeam/Sandwich-Events/discord"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
)

// SandwichMetadata represents the identification information attached by the producer.
type SandwichMetadata struct {
	Version       string            `json:"v"`
	Identifier    string            `json:"i"`
	Application   string            `json:"a"`
	ApplicationID discord.Snowflake `json:"id"`
	// ShardGroup ID, Shard ID, Shard Count
	Shard [3]int32 `json:"s"`
}

type SandwichTrace map[string]discord.Int64

// SandwichPayload represents the data that is received from producers.
type SandwichPayload struct {
	Op       discord.GatewayOp       `json:"op"`
	Data     sandwichjson.RawMessage `json:"d"`
	Sequence int32                   `json:"s"`
	Type     string                  `json:"t"`

	Extra    map[string]sandwichjson.RawMessage `json:"__extra,omitempty"`
	Metadata SandwichMetadata                   `json:"__sandwich"`
	Trace    SandwichTrace                      `json:"__sandwich_trace,omitempty"`
}

// DecodePayload decodes a message received from a producer.
func DecodePayload(data []byte) (*SandwichPayload, error) {
	var payload SandwichPayload

	if err := sandwichjson.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}
