package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/cyberwatch/internal/handlers"
	"github.com/nfrund/cyberwatch/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.GetLoginRateLimit())
	requireUser := middleware.RequireUser(s.authService)

	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login")
	})
	s.E.GET("/health", handlers.Health)

	s.E.GET("/login", s.authHandler.LoginGet)
	s.E.POST("/login", s.authHandler.LoginPost, rateLimiter)
	s.E.GET("/logout", s.authHandler.Logout)

	s.E.GET("/dashboard", s.dashboardHandler.DashboardGet, requireUser)
	s.E.GET("/dashboard/session", s.dashboardHandler.SessionGet, requireUser)
}
