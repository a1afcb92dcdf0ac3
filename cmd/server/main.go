package main

import (
	"log"

	"github.com/nfrund/cyberwatch/internal/config"
	"github.com/nfrund/cyberwatch/internal/logging"
	"github.com/nfrund/cyberwatch/internal/server"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	// Create a new server instance.
	s, err := server.New(cfg, logger, afero.NewOsFs())
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		log.Fatal(err)
	}

	// Register all application routes.
	s.RegisterRoutes()

	if err := s.Start(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		log.Fatal(err)
	}
}
