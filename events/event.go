package events

// Event is implemented by every event passed to handlers.
type Event interface {
	// Type returns the dispatch type the event was decoded from, such as INTERACTION_CREATE.
	Type() string

	// ResponseNumber increases by one for every event a Dispatcher creates.
	ResponseNumber() int64
}

// GenericEvent holds the fields shared by all events.
type GenericEvent struct {
	dispatcher *Dispatcher
	metadata   SandwichMetadata

	eventType      string
	responseNumber int64
}

func NewGenericEvent(dispatcher *Dispatcher, eventType string, responseNumber int64, metadata SandwichMetadata) *GenericEvent {
	return &GenericEvent{
		dispatcher:     dispatcher,
		metadata:       metadata,
		eventType:      eventType,
		responseNumber: responseNumber,
	}
}

func (e *GenericEvent) Type() string {
	return e.eventType
}

func (e *GenericEvent) ResponseNumber() int64 {
	return e.responseNumber
}

// Metadata returns the producer information of the payload the event came from.
func (e *GenericEvent) Metadata() SandwichMetadata {
	return e.metadata
}

// Dispatcher returns the dispatcher that created the event.
func (e *GenericEvent) Dispatcher() *Dispatcher {
	return e.dispatcher
}
