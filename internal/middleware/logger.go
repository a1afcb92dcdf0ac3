package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey struct{}

// Logger stores a logger tagged with the request ID in the request context.
// It must run after echo's RequestID middleware.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		logger := slog.Default().With(
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"remote_ip", c.RealIP(),
		)
		c.SetRequest(req.WithContext(context.WithValue(req.Context(), ctxKey{}, logger)))
		return next(c)
	}
}

// FromContext returns the logger stored by Logger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
