package outbox

import "context"

// Event is any domain event carrying a stable name identifier.
type Event interface {
	EventName() string
}

// Handler processes one delivered event. Errors are logged by the bus
// and never propagated back to the publisher.
type Handler func(ctx context.Context, e Event) error

// Publisher enqueues events for asynchronous delivery. Services publish
// notification triggers here; a failed publish must never abort the
// operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers a handler for a named event.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
