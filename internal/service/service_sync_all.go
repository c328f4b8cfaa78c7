// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type syncService struct {
	queue     QueueService
	executor  ExecutorService
	delta     DeltaService
	conflicts ConflictService
	monitor   ConnectivityMonitor
	session   SessionService
	cfg       config.Sync
	logger    *logger.Logger
	now       func() time.Time

	// drainMu keeps queue drains strictly sequential.
	drainMu sync.Mutex
}

func NewSyncService(queue QueueService, executor ExecutorService, delta DeltaService,
	conflicts ConflictService, monitor ConnectivityMonitor, session SessionService,
	cfg config.Sync, logger *logger.Logger) SyncService {
	return &syncService{
		queue:     queue,
		executor:  executor,
		delta:     delta,
		conflicts: conflicts,
		monitor:   monitor,
		session:   session,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *syncService) DrainQueue(ctx context.Context) (models.SyncResult, error) {
	s.drainMu.Lock()
	defer s.drainMu.Unlock()

	var result models.SyncResult

	// One pass over a snapshot: operations re-queued during the pass
	// wait for the next drain, so a persistently failing operation can
	// never spin the loop.
	for _, op := range s.queue.Pending() {
		op.Status = models.StatusProcessing
		if err := s.queue.Update(ctx, op); err != nil {
			return result, err
		}

		err := s.executor.Execute(ctx, op)
		if err == nil {
			if err := s.queue.Remove(ctx, op.ID); err != nil {
				return result, err
			}
			result.SyncedItems.Uploaded++
			continue
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			op.Status = models.StatusPending
			if updateErr := s.queue.Update(ctx, op); updateErr != nil {
				s.logger.Warn().Err(updateErr).Str("func", "syncService.DrainQueue").
					Str("operation_id", op.ID).
					Msg("interrupted operation not restored to pending")
			}
			result.LastSyncTime = s.now()
			return result, err
		}

		op.RetryCount++
		op.LastError = err.Error()

		kind := models.KindOf(err)
		if kind.Retryable() && op.CanRetry(s.cfg.MaxRetries) {
			op.Status = models.StatusPending
		} else {
			op.Status = models.StatusFailed
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s %s: %s", op.Type, op.RecordKey(), op.LastError))
			s.logger.Warn().Str("func", "syncService.DrainQueue").
				Str("operation_id", op.ID).
				Str("kind", string(kind)).
				Int("retry_count", op.RetryCount).
				Msg("operation failed permanently")
		}
		if err := s.queue.Update(ctx, op); err != nil {
			return result, err
		}
	}

	result.LastSyncTime = s.now()
	return result, nil
}

func (s *syncService) SyncAll(ctx context.Context, userID string) (models.SyncResult, error) {
	result, err := s.DrainQueue(ctx)
	if err != nil {
		return result, err
	}

	for _, category := range models.AllDataCategories {
		items, err := s.delta.Refresh(ctx, userID, category)
		result.SyncedItems.Downloaded += items.Downloaded
		result.SyncedItems.Conflicts += items.Conflicts
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			result.Errors = append(result.Errors,
				fmt.Sprintf("refresh %s: %v", category, err))
		}
	}

	result.LastSyncTime = s.now()

	s.logger.Info().Str("func", "syncService.SyncAll").
		Str("user_id", userID).
		Int("uploaded", result.SyncedItems.Uploaded).
		Int("downloaded", result.SyncedItems.Downloaded).
		Int("conflicts", result.SyncedItems.Conflicts).
		Int("errors", len(result.Errors)).
		Msg("full sync finished")

	return result, nil
}

func (s *syncService) Status(ctx context.Context) (models.EngineStatus, error) {
	status := models.EngineStatus{
		Online:           s.monitor.Online(),
		QueueLength:      s.queue.Len(),
		FailedOperations: s.queue.Failed(),
	}

	session, ok := s.session.Active()
	if !ok {
		return status, nil
	}
	status.ActiveUserID = session.UserID

	lastSync, err := s.delta.LastSync(ctx, session.UserID)
	if err != nil {
		return status, err
	}
	status.LastSync = lastSync

	pending, err := s.conflicts.PendingConflicts(ctx, session.UserID)
	if err != nil {
		return status, err
	}
	status.PendingConflicts = len(pending)

	return status, nil
}
