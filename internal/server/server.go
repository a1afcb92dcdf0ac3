package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/cyberwatch/internal/app"
	"github.com/nfrund/cyberwatch/internal/audit"
	"github.com/nfrund/cyberwatch/internal/auth"
	"github.com/nfrund/cyberwatch/internal/config"
	"github.com/nfrund/cyberwatch/internal/dashboard"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/handlers"
	"github.com/nfrund/cyberwatch/internal/middleware"
	"github.com/nfrund/cyberwatch/internal/pubsub"
	authsession "github.com/nfrund/cyberwatch/internal/session"
	"github.com/nfrund/cyberwatch/web"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	bus              *pubsub.WatermillBridge
	users            domain.UserRepository
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	authService      *auth.Service
	stopAudit        context.CancelFunc
}

// New builds the server from cfg. fs backs the file stores.
func New(cfg config.Provider, logger *slog.Logger, fs afero.Fs) (*Server, error) {
	injector := app.NewInjector(cfg, logger, fs)

	authService, err := do.Invoke[*auth.Service](injector)
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}
	users := do.MustInvoke[domain.UserRepository](injector)
	overview, err := do.Invoke[*dashboard.Service](injector)
	if err != nil {
		return nil, fmt.Errorf("build dashboard service: %w", err)
	}
	bus := do.MustInvoke[*pubsub.WatermillBridge](injector)

	auditCtx, stopAudit := context.WithCancel(context.Background())
	if err := do.MustInvoke[*audit.Logger](injector).Start(auditCtx, bus); err != nil {
		stopAudit()
		return nil, fmt.Errorf("start audit log: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	setupErrorHandling(e)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			middleware.FromContext(c.Request().Context()).Info("request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(echomw.Recover())

	secure := strings.HasPrefix(cfg.GetAppBaseURL(), "https://")
	e.Use(session.Middleware(authsession.NewStore(cfg.GetSessionSecret(), secure)))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:                e,
		Cfg:              cfg,
		bus:              bus,
		users:            users,
		authService:      authService,
		authHandler:      handlers.NewAuthHandler(authService, cfg.GetClientValidator()),
		dashboardHandler: handlers.NewDashboardHandler(overview),
		stopAudit:        stopAudit,
	}, nil
}

// UserStore is a getter for the server's user store, useful for testing.
func (s *Server) UserStore() domain.UserRepository {
	return s.users
}

// close releases background resources.
func (s *Server) close(ctx context.Context) {
	s.stopAudit()
	if err := s.bus.Close(); err != nil {
		slog.Warn("Failed to close event bus", "error", err)
	}
	if c, ok := s.users.(interface{ Close(context.Context) error }); ok {
		if err := c.Close(ctx); err != nil {
			slog.Warn("Failed to close user store", "error", err)
		}
	}
}
