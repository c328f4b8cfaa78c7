// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
)

// drainWorker drains the operation queue on a fixed schedule and
// immediately when a critical operation is enqueued. Drains are skipped
// while the remote store is unreachable; queued operations wait for the
// next online window instead of burning their retry budget offline.
type drainWorker struct {
	sync     service.SyncService
	queue    service.QueueService
	monitor  service.ConnectivityMonitor
	interval time.Duration
	logger   *logger.Logger
}

func NewDrainWorker(sync service.SyncService, queue service.QueueService,
	monitor service.ConnectivityMonitor, interval time.Duration, logger *logger.Logger) Worker {
	return &drainWorker{
		sync:     sync,
		queue:    queue,
		monitor:  monitor,
		interval: interval,
		logger:   logger,
	}
}

func (w *drainWorker) Run(ctx context.Context) {
	go w.loop(ctx)
}

func (w *drainWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		case <-w.queue.Kick():
			w.drain(ctx)
		}
	}
}

func (w *drainWorker) drain(ctx context.Context) {
	if !w.monitor.Online() {
		return
	}
	if w.queue.Len() == 0 {
		return
	}

	result, err := w.sync.DrainQueue(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Str("func", "drainWorker.drain").
			Msg("scheduled drain interrupted")
		return
	}

	w.logger.Debug().Str("func", "drainWorker.drain").
		Int("uploaded", result.SyncedItems.Uploaded).
		Int("failed", len(result.Errors)).
		Msg("scheduled drain finished")
}
