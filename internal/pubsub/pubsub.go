// Package pubsub is the in-process event bus used to announce auth events.
package pubsub

import "context"

// Message is one event on the bus.
type Message struct {
	Topic string
	// UserID is the record ID of the account the event concerns, if any.
	UserID string
	// Payload is the JSON-encoded event body.
	Payload []byte
	// Metadata carries free-form context such as a request ID.
	Metadata map[string]string
}

// Handler processes a delivered message. Returned errors are logged.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber delivers messages for a topic to a Handler in the background
// until ctx is canceled or Close is called.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
