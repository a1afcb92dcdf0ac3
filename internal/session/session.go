// Package session stores the signed-in user's email in a cookie session.
// The cookie is signed with SESSION_SECRET, not encrypted: clients can read
// the email but cannot change it.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	authSessionName = "auth-session"
	keyUserEmail    = "user_email"
)

// NewStore returns the cookie store shared by the auth and flash sessions.
// secure should be true when the site is served over HTTPS.
func NewStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SetUser records email as the signed-in user.
func SetUser(c echo.Context, email string) error {
	sess, err := session.Get(authSessionName, c)
	if err != nil {
		return err
	}
	sess.Values[keyUserEmail] = email
	return sess.Save(c.Request(), c.Response())
}

// User returns the signed-in email, or "" when there is none.
func User(c echo.Context) string {
	sess, err := session.Get(authSessionName, c)
	if err != nil {
		return ""
	}
	email, _ := sess.Values[keyUserEmail].(string)
	return email
}

// Clear expires the auth session cookie.
func Clear(c echo.Context) error {
	sess, err := session.Get(authSessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, keyUserEmail)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
