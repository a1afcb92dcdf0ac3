package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/cyberwatch/internal/middleware"
)

// setupErrorHandling installs the HTTP error handler. Errors that are not
// *echo.HTTPError are logged with a stack trace and answered with a bare 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logger := middleware.FromContext(c.Request().Context())
		logger.Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			slog.String("stack_trace", string(debug.Stack())),
		)
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
