package pubsub

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ErrClosed is returned by Publish and Subscribe after Close.
var ErrClosed = errors.New("pubsub: bus closed")

// Reserved watermill metadata keys carrying Message fields.
const (
	metaUserID = "_user_id"
	metaTopic  = "_topic"
)

// WatermillBridge is an in-process bus on watermill's GoChannel. It is both
// the Publisher and the Subscriber for the auth events.
type WatermillBridge struct {
	gc *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

var (
	_ Publisher  = (*WatermillBridge)(nil)
	_ Subscriber = (*WatermillBridge)(nil)
)

// NewWatermillBridge creates the bus. Messages published while a topic has no
// subscriber are dropped; debug turns on watermill's own logging.
func NewWatermillBridge(debug bool) *WatermillBridge {
	return &WatermillBridge{
		gc: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewStdLogger(debug, false),
		),
	}
}

// Publish sends msg to every subscriber of msg.Topic.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	if wb.closed {
		return ErrClosed
	}

	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	wmMsg.Metadata.Set(metaTopic, msg.Topic)
	if msg.UserID != "" {
		wmMsg.Metadata.Set(metaUserID, msg.UserID)
	}
	return wb.gc.Publish(msg.Topic, wmMsg)
}

// Subscribe runs handler for every message on topic until ctx is done or the
// bus is closed. A failing handler is logged and the message is still acked:
// GoChannel would otherwise redeliver it forever.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	if wb.closed {
		return ErrClosed
	}

	messages, err := wb.gc.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			msg := fromWatermill(wmMsg)
			if err := handler(wmMsg.Context(), msg); err != nil {
				slog.Error("Event handler failed", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription closed", "topic", topic)
	}()
	return nil
}

// Close stops every subscription. It is safe to call more than once.
func (wb *WatermillBridge) Close() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.closed {
		return nil
	}
	wb.closed = true
	return wb.gc.Close()
}

func fromWatermill(wmMsg *message.Message) Message {
	msg := Message{
		Topic:    wmMsg.Metadata.Get(metaTopic),
		UserID:   wmMsg.Metadata.Get(metaUserID),
		Payload:  wmMsg.Payload,
		Metadata: make(map[string]string, len(wmMsg.Metadata)),
	}
	for k, v := range wmMsg.Metadata {
		if k == metaTopic || k == metaUserID {
			continue
		}
		msg.Metadata[k] = v
	}
	return msg
}
