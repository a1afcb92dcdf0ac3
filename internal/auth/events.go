package auth

import "github.com/nfrund/cyberwatch/internal/pubsub"

// Failure reasons carried by LoginFailed. They are for operators only; users
// always see the same message.
const (
	ReasonUnknownUser = "unknown_user"
	ReasonBadPassword = "bad_password"
	ReasonInactive    = "inactive"
)

// LoginSucceeded is published after a successful sign-in.
type LoginSucceeded struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginFailed is published for every rejected sign-in.
type LoginFailed struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// LoggedOut is published when a session is cleared.
type LoggedOut struct {
	Email string `json:"email"`
}

var (
	TopicLoginSucceeded = pubsub.NewEvent[LoginSucceeded]("auth.login.succeeded")
	TopicLoginFailed    = pubsub.NewEvent[LoginFailed]("auth.login.failed")
	TopicLoggedOut      = pubsub.NewEvent[LoggedOut]("auth.logout")
)
