package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/session"
)

// UserContextKey is where RequireUser stores the *domain.User.
const UserContextKey = "user"

// UserResolver looks up the active user behind a session.
type UserResolver interface {
	CurrentUser(ctx context.Context, email string) (*domain.User, error)
}

// RequireUser protects routes that need a signed-in, still active user.
// Anyone else is sent to /login; htmx requests get an HX-Redirect instead of
// a 302 so the whole page navigates.
func RequireUser(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := session.User(c)
			if email == "" {
				return redirectToLogin(c)
			}

			user, err := users.CurrentUser(c.Request().Context(), email)
			if err != nil {
				FromContext(c.Request().Context()).Info("Session user rejected", "email", email, "error", err)
				_ = session.Clear(c)
				return redirectToLogin(c)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}

func redirectToLogin(c echo.Context) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", "/login")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusFound, "/login")
}
