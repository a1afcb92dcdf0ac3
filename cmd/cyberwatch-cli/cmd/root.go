package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nfrund/cyberwatch/internal/app"
	"github.com/nfrund/cyberwatch/internal/config"
	"github.com/nfrund/cyberwatch/internal/database"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/logging"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// appFs is the filesystem behind the file stores. Tests swap in a
// memory filesystem.
var appFs afero.Fs = afero.NewOsFs()

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cyberwatch-cli",
		Short: "CyberWatch admin CLI",
		Long: `cyberwatch-cli manages CyberWatch accounts and incidents.

Available commands:
  user create             Create a user account
  user list               List user accounts
  user migrate-passwords  Hash any legacy plaintext passwords
  incident seed           Generate sample incidents for the last 24 hours
  incident list           List incidents
  version                 Print the CLI version

The store is chosen by the same USER_STORE, USERS_FILE, INCIDENTS_FILE and
SURREAL_* settings the server reads.`,
		SilenceUsage: true,
	}
	root.AddCommand(newUserCmd(), newIncidentCmd(), newVersionCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openInjector builds the service container from the tooling configuration.
// The returned func closes the database connection when one was opened.
func openInjector(cmd *cobra.Command) (do.Injector, func(), error) {
	cfg, err := config.NewTooling()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	logger := slog.New(logging.NewHandler(cmd.ErrOrStderr(), cfg.GetLogFormat(), cfg.GetLogLevel()))

	injector := app.NewInjector(cfg, logger, appFs)
	closeFn := func() {
		if cfg.GetUserStore() != config.StoreSurreal {
			return
		}
		conn, err := do.Invoke[*database.Connection](injector)
		if err != nil {
			return
		}
		if err := conn.Close(context.Background()); err != nil {
			logger.Warn("Failed to close database connection", "error", err)
		}
	}
	return injector, closeFn, nil
}

// openUsers resolves the configured user repository.
func openUsers(cmd *cobra.Command) (domain.UserRepository, func(), error) {
	injector, closeFn, err := openInjector(cmd)
	if err != nil {
		return nil, nil, err
	}
	users, err := do.Invoke[domain.UserRepository](injector)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return users, closeFn, nil
}
