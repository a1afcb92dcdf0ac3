package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event binds a topic name to the payload type published on it.
type Event[T any] struct {
	Topic string
}

// NewEvent declares a typed topic.
func NewEvent[T any](topic string) Event[T] {
	return Event[T]{Topic: topic}
}

// Publish encodes payload as JSON and sends it on the event's topic.
func (e Event[T]) Publish(ctx context.Context, pub Publisher, userID string, payload T, metadata map[string]string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", e.Topic, err)
	}
	return pub.Publish(ctx, Message{
		Topic:    e.Topic,
		UserID:   userID,
		Payload:  data,
		Metadata: metadata,
	})
}

// Decode unmarshals msg's payload into T.
func (e Event[T]) Decode(msg Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("decode %s payload: %w", e.Topic, err)
	}
	return v, nil
}
