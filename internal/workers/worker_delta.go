// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// deltaWorker periodically pulls remote changes for the active user so
// records edited on other devices appear without an explicit sync.
type deltaWorker struct {
	delta    service.DeltaService
	session  service.SessionService
	monitor  service.ConnectivityMonitor
	interval time.Duration
	logger   *logger.Logger
}

func NewDeltaRefreshWorker(delta service.DeltaService, session service.SessionService,
	monitor service.ConnectivityMonitor, interval time.Duration, logger *logger.Logger) Worker {
	return &deltaWorker{
		delta:    delta,
		session:  session,
		monitor:  monitor,
		interval: interval,
		logger:   logger,
	}
}

func (w *deltaWorker) Run(ctx context.Context) {
	go w.loop(ctx)
}

func (w *deltaWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *deltaWorker) refresh(ctx context.Context) {
	if !w.monitor.Online() {
		return
	}
	session, ok := w.session.Active()
	if !ok {
		return
	}

	for _, category := range models.AllDataCategories {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.delta.Refresh(ctx, session.UserID, category); err != nil {
			w.logger.Warn().Err(err).Str("func", "deltaWorker.refresh").
				Str("category", category.String()).
				Msg("background refresh failed")
		}
	}
}
