// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/validators"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// ClientServices aggregates the engine's services behind one value the
// composition roots pass to workers, handlers and the terminal UI.
type ClientServices struct {
	Queue       QueueService
	Executor    ExecutorService
	Coordinator CoordinatorService
	Conflicts   ConflictService
	Delta       DeltaService
	Monitor     ConnectivityMonitor
	Session     SessionService
	Sync        SyncService
	Migration   MigrationService
	AppInfo     AppInfoService
}

// NewClientServices wires the full engine: queue over the local state
// store, executor and coordinator over the remote adapter, delta
// tracker, connectivity monitor, session manager and the migration
// pipeline. The queue is restored from its persisted blob here, before
// any subscriber can mutate it: an enqueue against an unloaded queue
// would persist the near-empty in-memory list over the surviving
// operations. Two signals are connected here: a reachability regain
// triggers a queue drain, and a sign-in triggers a full sync for the
// signed-in user. Both run on their own goroutine, scoped to ctx so
// they cannot outlive the process lifecycle.
func NewClientServices(ctx context.Context, storages *store.ClientStorages, remote adapter.RemoteStore,
	cfg *config.ClientConfig, logger *logger.Logger) (*ClientServices, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	deviceID, err := ensureDeviceID(ctx, cfg.App.DeviceID, storages.StateRepository)
	if err != nil {
		return nil, err
	}

	queue := NewQueueService(storages.StateRepository, logger)
	if err := queue.Load(ctx); err != nil {
		return nil, err
	}
	executor := NewExecutorService(storages.RecordRepository, remote, cfg.Sync, logger)
	conflicts := NewConflictService(storages.ConflictRepository,
		models.ConflictStrategy(cfg.Sync.ConflictStrategy), logger)
	coordinator := NewCoordinatorService(storages.RecordRepository, remote, queue,
		conflicts, cfg.Sync, deviceID, logger)
	delta := NewDeltaService(storages.RecordRepository, storages.StateRepository,
		remote, conflicts, logger)
	monitor := NewConnectivityMonitor(remote, cfg.Sync.ProbeInterval, logger)
	session := NewSessionService(storages.StateRepository, remote, logger)
	syncSvc := NewSyncService(queue, executor, delta, conflicts, monitor, session,
		cfg.Sync, logger)
	migration := NewMigrationService(storages.RecordRepository, storages.StateRepository,
		remote, validators.NewSnapshotValidator(), cfg.Migration, logger)

	monitor.Subscribe(func(online bool) {
		if !online {
			return
		}
		go func() {
			if _, err := syncSvc.DrainQueue(ctx); err != nil {
				logger.Err(err).Str("func", "service.NewClientServices").
					Msg("drain after connectivity regain failed")
			}
		}()
	})

	session.OnSignIn(func(_ context.Context, s models.Session) {
		go func() {
			if _, err := syncSvc.SyncAll(ctx, s.UserID); err != nil {
				logger.Err(err).Str("func", "service.NewClientServices").
					Str("user_id", s.UserID).
					Msg("full sync after sign-in failed")
			}
		}()
	})

	return &ClientServices{
		Queue:       queue,
		Executor:    executor,
		Coordinator: coordinator,
		Conflicts:   conflicts,
		Delta:       delta,
		Monitor:     monitor,
		Session:     session,
		Sync:        syncSvc,
		Migration:   migration,
		AppInfo:     appInfo,
	}, nil
}
