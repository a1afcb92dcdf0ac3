// Package auth checks credentials against the user store and announces the
// outcome on the event bus.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/password"
	"github.com/nfrund/cyberwatch/internal/pubsub"
)

// dummyHash is compared against when the user does not exist so unknown and
// known addresses take the same time to reject.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZXSj8Q6x0E1f7e6K8dKZ4a"

// Service authenticates users.
type Service struct {
	users domain.UserRepository
	pub   pubsub.Publisher
}

// NewService creates a Service. pub may be nil to disable events.
func NewService(users domain.UserRepository, pub pubsub.Publisher) *Service {
	return &Service{users: users, pub: pub}
}

// Authenticate returns the user owning email when pw matches and the account
// is active. Unknown users and wrong passwords both yield
// domain.ErrInvalidCredentials; inactive accounts yield domain.ErrInactiveUser.
func (s *Service) Authenticate(ctx context.Context, email, pw string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		password.Verify(dummyHash, pw)
		s.fail(ctx, email, ReasonUnknownUser)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Verify(user.Password, pw) {
		s.fail(ctx, email, ReasonBadPassword)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.fail(ctx, email, ReasonInactive)
		return nil, domain.ErrInactiveUser
	}

	s.publish(ctx, func() error {
		return TopicLoginSucceeded.Publish(ctx, s.pub, userID(user), LoginSucceeded{Email: user.Email, Role: user.Role}, nil)
	})
	return user, nil
}

// CurrentUser resolves the user behind a session. It fails for users that
// were removed or deactivated after signing in.
func (s *Service) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// Logout announces that email's session ended.
func (s *Service) Logout(ctx context.Context, email string) {
	s.publish(ctx, func() error {
		return TopicLoggedOut.Publish(ctx, s.pub, "", LoggedOut{Email: email}, nil)
	})
}

func (s *Service) fail(ctx context.Context, email, reason string) {
	s.publish(ctx, func() error {
		return TopicLoginFailed.Publish(ctx, s.pub, "", LoginFailed{Email: email, Reason: reason}, nil)
	})
}

func (s *Service) publish(ctx context.Context, fn func() error) {
	if s.pub == nil {
		return
	}
	if err := fn(); err != nil {
		slog.WarnContext(ctx, "Failed to publish auth event", "error", err)
	}
}

func userID(u *domain.User) string {
	if u.ID == nil {
		return ""
	}
	return u.ID.String()
}
