package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_PerClientBudget(t *testing.T) {
	const perMinute = 3
	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimiter(perMinute))

	for i := 0; i < perMinute; i++ {
		require.Equal(t, http.StatusOK, hit(e, "192.0.2.2:1234").Code, "attempt %d", i+1)
	}

	denied := hit(e, "192.0.2.2:1234")
	assert.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.Equal(t, "Demasiados intentos. Inténtelo más tarde.", denied.Body.String())

	// Another client has its own budget.
	assert.Equal(t, http.StatusOK, hit(e, "192.0.2.9:1234").Code)
}
