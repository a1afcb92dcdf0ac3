// Package audit records authentication events in the application log.
package audit

import (
	"context"
	"log/slog"

	"github.com/nfrund/cyberwatch/internal/auth"
	"github.com/nfrund/cyberwatch/internal/pubsub"
)

// Logger writes one structured line per auth event.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates an audit Logger writing to log.
func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log.With("component", "audit")}
}

// Start subscribes to every auth topic. Subscriptions end with ctx.
func (l *Logger) Start(ctx context.Context, sub pubsub.Subscriber) error {
	subs := []struct {
		topic   string
		handler pubsub.Handler
	}{
		{auth.TopicLoginSucceeded.Topic, l.onLoginSucceeded},
		{auth.TopicLoginFailed.Topic, l.onLoginFailed},
		{auth.TopicLoggedOut.Topic, l.onLoggedOut},
	}
	for _, s := range subs {
		if err := sub.Subscribe(ctx, s.topic, s.handler); err != nil {
			return err
		}
	}
	return nil
}

func (l *Logger) onLoginSucceeded(ctx context.Context, msg pubsub.Message) error {
	ev, err := auth.TopicLoginSucceeded.Decode(msg)
	if err != nil {
		return err
	}
	l.log.InfoContext(ctx, "Login succeeded", "event", msg.Topic, "email", ev.Email, "role", ev.Role, "user_id", msg.UserID)
	return nil
}

func (l *Logger) onLoginFailed(ctx context.Context, msg pubsub.Message) error {
	ev, err := auth.TopicLoginFailed.Decode(msg)
	if err != nil {
		return err
	}
	l.log.WarnContext(ctx, "Login failed", "event", msg.Topic, "email", ev.Email, "reason", ev.Reason)
	return nil
}

func (l *Logger) onLoggedOut(ctx context.Context, msg pubsub.Message) error {
	ev, err := auth.TopicLoggedOut.Decode(msg)
	if err != nil {
		return err
	}
	l.log.InfoContext(ctx, "Logged out", "event", msg.Topic, "email", ev.Email)
	return nil
}
