// Package app wires the application's services into a dependency container.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/cyberwatch/internal/audit"
	"github.com/nfrund/cyberwatch/internal/auth"
	"github.com/nfrund/cyberwatch/internal/config"
	"github.com/nfrund/cyberwatch/internal/dashboard"
	"github.com/nfrund/cyberwatch/internal/database"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/pubsub"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// NewInjector registers every core service. Services are built lazily on
// first Invoke. fs backs the file stores; pass afero.NewOsFs() in
// production.
func NewInjector(cfg config.Provider, logger *slog.Logger, fs afero.Fs) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, logger)
	do.ProvideValue(i, fs)

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(false), nil
	})
	do.Provide(i, newConnection)
	do.Provide(i, newUserRepository)
	do.Provide(i, newIncidentRepository)
	do.Provide(i, func(i do.Injector) (*dashboard.Service, error) {
		incidents, err := do.Invoke[domain.IncidentRepository](i)
		if err != nil {
			return nil, err
		}
		return dashboard.NewService(incidents), nil
	})
	do.Provide(i, func(i do.Injector) (*auth.Service, error) {
		users, err := do.Invoke[domain.UserRepository](i)
		if err != nil {
			return nil, err
		}
		bus, err := do.Invoke[*pubsub.WatermillBridge](i)
		if err != nil {
			return nil, err
		}
		return auth.NewService(users, bus), nil
	})
	do.Provide(i, func(i do.Injector) (*audit.Logger, error) {
		return audit.NewLogger(do.MustInvoke[*slog.Logger](i)), nil
	})
	return i
}

// newConnection dials SurrealDB. It is only invoked when USER_STORE=surreal
// and is shared by the user and incident stores.
func newConnection(i do.Injector) (*database.Connection, error) {
	conn := database.NewConnection(do.MustInvoke[config.Provider](i))
	if err := conn.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return conn, nil
}

// newUserRepository selects the user store named by USER_STORE.
func newUserRepository(i do.Injector) (domain.UserRepository, error) {
	cfg := do.MustInvoke[config.Provider](i)

	switch cfg.GetUserStore() {
	case config.StoreSurreal:
		conn, err := do.Invoke[*database.Connection](i)
		if err != nil {
			return nil, err
		}
		store := database.NewSurrealUserStore(conn, cfg.GetDBQueryTimeout())
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("prepare user schema: %w", err)
		}
		return store, nil
	default:
		return database.NewFileUserStore(do.MustInvoke[afero.Fs](i), cfg.GetUsersFile()), nil
	}
}

// newIncidentRepository keeps incidents in the same backend as users.
func newIncidentRepository(i do.Injector) (domain.IncidentRepository, error) {
	cfg := do.MustInvoke[config.Provider](i)

	switch cfg.GetUserStore() {
	case config.StoreSurreal:
		conn, err := do.Invoke[*database.Connection](i)
		if err != nil {
			return nil, err
		}
		store := database.NewSurrealIncidentStore(conn, cfg.GetDBQueryTimeout())
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("prepare incident schema: %w", err)
		}
		return store, nil
	default:
		return database.NewFileIncidentStore(do.MustInvoke[afero.Fs](i), cfg.GetIncidentsFile()), nil
	}
}
