package sandwichjson

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// RawMessage is a raw encoded JSON value.
type RawMessage = jsoniter.RawMessage

func Unmarshal(data []byte, v any) error {
	return jsoniter.Unmarshal(data, v)
}

func UnmarshalReader(reader io.Reader, v any) error {
	return jsoniter.NewDecoder(reader).Decode(v)
}

func Marshal(v any) ([]byte, error) {
	return jsoniter.Marshal(v)
}

func MarshalToWriter(writer io.Writer, v any) error {
	return jsoniter.NewEncoder(writer).Encode(v)
}
