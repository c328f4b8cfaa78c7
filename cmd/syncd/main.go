package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/handler"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/server"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// syncd is the headless engine daemon: it keeps the durable queue
// draining and the delta cursors fresh in the background and exposes
// the local control API over HTTP.
func main() {
	printBuildInfo()

	log := logger.NewLogger("go-fit-syncd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remote, err := adapter.NewRemoteStore(ctx, cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating remote store")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating local storage")
	}

	services, err := service.NewClientServices(ctx, storages, remote, cfg.ClientView(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client services")
	}

	services.Monitor.Start(ctx)
	defer services.Monitor.Stop()

	if _, err = services.Session.Restore(ctx); err != nil {
		log.Info().Msg("no persisted session, waiting for sign-in via control API")
	}

	pool := workers.NewWorkers(
		workers.NewDrainWorker(services.Sync, services.Queue, services.Monitor,
			cfg.Sync.DrainInterval, log),
		workers.NewDeltaRefreshWorker(services.Delta, services.Session, services.Monitor,
			cfg.Workers.DeltaRefreshInterval, log),
	)
	pool.Run(ctx)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating servers")
	}

	servers.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
