// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type conflictService struct {
	audit    store.ConflictAuditRepository
	strategy models.ConflictStrategy
	ids      *utils.UUIDGenerator
	logger   *logger.Logger
	now      func() time.Time
}

func NewConflictService(audit store.ConflictAuditRepository, strategy models.ConflictStrategy, logger *logger.Logger) ConflictService {
	if !strategy.Valid() {
		strategy = models.StrategyAuto
	}

	return &conflictService{
		audit:    audit,
		strategy: strategy,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
		now:      time.Now,
	}
}

func (c *conflictService) Resolve(ctx context.Context, local, remote models.Record) (models.Record, error) {
	winner := c.pickWinner(local, remote)

	entry := models.ConflictRecord{
		ID:               c.ids.Generate(),
		UserID:           local.UserID,
		Category:         local.Category,
		CategoryID:       local.CategoryID,
		LocalModifiedAt:  local.Sync.LastModifiedAt,
		RemoteModifiedAt: remote.Sync.LastModifiedAt,
		Winner:           winner,
		Strategy:         c.strategy,
		DetectedAt:       c.now(),
		Pending:          c.strategy == models.StrategyManual,
	}

	// Audit failures never block reconciliation; the winner still
	// propagates and the miss is logged.
	if err := c.audit.SaveConflict(ctx, entry); err != nil {
		c.logger.Warn().Err(err).Str("func", "conflictService.Resolve").
			Str("record", local.Key().String()).
			Msg("conflict audit entry not saved")
	}

	c.logger.Info().Str("func", "conflictService.Resolve").
		Str("record", local.Key().String()).
		Str("winner", string(winner)).
		Str("strategy", string(c.strategy)).
		Msg("conflict resolved")

	if winner == models.WinnerLocal {
		return local, nil
	}
	return remote, nil
}

// pickWinner applies the configured strategy. Under auto the strictly
// newer LastModifiedAt wins; a missing timestamp on either side and
// exact ties resolve to the remote copy.
func (c *conflictService) pickWinner(local, remote models.Record) models.ConflictWinner {
	switch c.strategy {
	case models.StrategyLocalWins:
		return models.WinnerLocal
	case models.StrategyRemoteWins, models.StrategyManual:
		return models.WinnerRemote
	}

	localTS := local.Sync.LastModifiedAt
	remoteTS := remote.Sync.LastModifiedAt
	if localTS.IsZero() || remoteTS.IsZero() {
		return models.WinnerRemote
	}
	if localTS.After(remoteTS) {
		return models.WinnerLocal
	}
	return models.WinnerRemote
}

func (c *conflictService) PendingConflicts(ctx context.Context, userID string) ([]models.ConflictRecord, error) {
	conflicts, err := c.audit.GetPendingConflicts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get pending conflicts: %w", err)
	}
	return conflicts, nil
}

func (c *conflictService) Acknowledge(ctx context.Context, conflictID string, winner models.ConflictWinner) error {
	if err := c.audit.ResolveConflict(ctx, conflictID, winner); err != nil {
		return fmt.Errorf("acknowledge conflict %s: %w", conflictID, err)
	}
	return nil
}
