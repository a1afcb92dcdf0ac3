package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/loginform"
	"github.com/nfrund/cyberwatch/internal/middleware"
	"github.com/nfrund/cyberwatch/internal/session"
	"github.com/nfrund/cyberwatch/internal/view"
	authdto "github.com/nfrund/cyberwatch/internal/view/dto/auth"
	"github.com/nfrund/cyberwatch/web/src/templates/layouts"
	"github.com/nfrund/cyberwatch/web/src/templates/pages"
)

// Messages shown above the login form.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgLoginUnavailable   = "No se pudo iniciar sesión. Inténtelo de nuevo."
	MsgLoggedOut          = "Sesión cerrada."
)

// Authenticator is the part of the auth service the handlers need.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	CurrentUser(ctx context.Context, email string) (*domain.User, error)
	Logout(ctx context.Context, email string)
}

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	auth            Authenticator
	clientValidator string
}

// NewAuthHandler creates a new AuthHandler. clientValidator picks the
// browser-side validator script served with the login page.
func NewAuthHandler(auth Authenticator, clientValidator string) *AuthHandler {
	return &AuthHandler{auth: auth, clientValidator: clientValidator}
}

// LoginGet renders the login page (GET /login). Users with a live session go
// straight to the dashboard.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if email := session.User(c); email != "" {
		if _, err := h.auth.CurrentUser(c.Request().Context(), email); err == nil {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
	}
	return h.renderLogin(c, http.StatusOK, authdto.LoginData{})
}

// LoginPost validates the submitted form and signs the user in.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	log := middleware.FromContext(c.Request().Context())

	var creds loginform.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	// Same check the browser runs; it only reaches us when the script did not.
	form := loginform.NewForm()
	if !form.Submit(creds) {
		return h.renderLogin(c, http.StatusUnprocessableEntity, authdto.LoginData{Form: form})
	}

	user, err := h.auth.Authenticate(c.Request().Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrInactiveUser) {
			log.Warn("Failed login attempt", "email", creds.Email, "error", err)
			return h.renderLogin(c, http.StatusUnauthorized, authdto.LoginData{Form: form, Error: MsgInvalidCredentials})
		}
		log.Error("Error authenticating user", "email", creds.Email, "error", err)
		return h.renderLogin(c, http.StatusInternalServerError, authdto.LoginData{Form: form, Error: MsgLoginUnavailable})
	}

	if err := session.SetUser(c, user.Email); err != nil {
		log.Error("Failed to save session", "error", err)
		return h.renderLogin(c, http.StatusInternalServerError, authdto.LoginData{Form: form, Error: MsgLoginUnavailable})
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if email := session.User(c); email != "" {
		h.auth.Logout(c.Request().Context(), email)
	}
	if err := session.Clear(c); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to clear session", "error", err)
	}
	view.SetFlashSuccess(c, MsgLoggedOut)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, data authdto.LoginData) error {
	data.ClientValidator = h.clientValidator
	flashes := view.GetFlashData(c)
	page := layouts.Base("Login", flashes, pages.Login(data), pages.LoginScripts(data.ClientValidator)...)
	return render(c, status, page)
}
