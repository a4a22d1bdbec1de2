package discord

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
)

var (
	ErrUnauthorized = errors.New("improper token was passed")

	// ErrUnknownStickerFormat is returned when asking for the extension of a
	// sticker format that is not known. Check the format before building urls.
	ErrUnknownStickerFormat = errors.New("can only get extension of a known sticker format")
)

// RestError contains the error structure that is returned by discord.
type RestError struct {
	Message      *ErrorMessage
	Method       string
	URL          string
	ResponseBody []byte
	StatusCode   int
}

// ErrorMessage represents a basic error message.
type ErrorMessage struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Code    int32           `json:"code"`
}

func NewRestError(method, url string, statusCode int, body []byte) *RestError {
	var errorMessage ErrorMessage

	_ = sandwichjson.Unmarshal(body, &errorMessage)

	return &RestError{
		Method:       method,
		URL:          url,
		StatusCode:   statusCode,
		ResponseBody: body,
		Message:      &errorMessage,
	}
}

func (r *RestError) Error() string {
	return fmt.Sprintf("%s %s: %d: %s", r.Method, r.URL, r.StatusCode, r.Message.Message)
}
