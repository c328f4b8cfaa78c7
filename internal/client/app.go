package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/internal/tui"
	"github.com/MKhiriev/go-fit-keeper/internal/workers"
)

type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	pool     *workers.Workers
	logger   *logger.Logger
}

// NewApp assembles the interactive client: the engine services, the
// background drain and delta-refresh workers and the terminal UI.
func NewApp(services *service.ClientServices, ui *tui.TUI, cfg *config.ClientConfig,
	logger *logger.Logger) (*App, error) {
	pool := workers.NewWorkers(
		workers.NewDrainWorker(services.Sync, services.Queue, services.Monitor,
			cfg.Sync.DrainInterval, logger),
		workers.NewDeltaRefreshWorker(services.Delta, services.Session, services.Monitor,
			cfg.Workers.DeltaRefreshInterval, logger),
	)

	return &App{
		services: services,
		ui:       ui,
		pool:     pool,
		logger:   logger,
	}, nil
}

// Run starts the reachability monitor and the workers, restores a
// persisted session if one exists and hands the terminal over to the
// dashboard until the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.services.Monitor.Start(ctx)
	defer a.services.Monitor.Stop()

	if _, err := a.services.Session.Restore(ctx); err != nil {
		if !errors.Is(err, service.ErrNoActiveSession) {
			a.logger.Err(err).Str("func", "*App.Run").Msg("session restore failed")
		}
	}

	a.pool.Run(ctx)

	if err := a.ui.Run(ctx); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		return err
	}
	return nil
}
