package events

import "errors"

var (
	ErrNoDispatchHandler = errors.New("no dispatch handler found")
	ErrAlreadyResponded  = errors.New("interaction has already been responded to")
	ErrNoResponder       = errors.New("interaction has no responder")
)
