// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type executorService struct {
	records store.LocalRecordRepository
	remote  adapter.RemoteStore
	cfg     config.Sync
	logger  *logger.Logger
	now     func() time.Time
}

func NewExecutorService(records store.LocalRecordRepository, remote adapter.RemoteStore, cfg config.Sync, logger *logger.Logger) ExecutorService {
	return &executorService{
		records: records,
		remote:  remote,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (e *executorService) Execute(ctx context.Context, op models.OperationRecord) error {
	if delay := backoffDelay(op.RetryCount, e.cfg.BaseDelay, e.cfg.MaxDelay); delay > 0 {
		e.logger.Debug().Str("func", "executorService.Execute").
			Str("operation_id", op.ID).
			Int("retry_count", op.RetryCount).
			Dur("delay", delay).
			Msg("backing off before retry")
		if err := sleepContext(ctx, delay); err != nil {
			return err
		}
	}

	if !op.Type.Valid() {
		return models.NewSyncError(models.KindValidation, "execute", op.Category,
			fmt.Errorf("unknown operation type %q", op.Type))
	}
	if !op.Category.Valid() {
		return models.NewSyncError(models.KindValidation, "execute", op.Category,
			fmt.Errorf("unknown data category %q", op.Category))
	}

	var err error
	switch op.Type {
	case models.OpCreate, models.OpUpdate:
		err = e.upsert(ctx, op)
	case models.OpDelete:
		err = e.remote.Delete(ctx, op.UserID, op.RecordKey())
	}
	if err != nil {
		return err
	}

	if err := e.records.MarkSynced(ctx, op.UserID, op.RecordKey(), e.now()); err != nil &&
		!errors.Is(err, store.ErrRecordNotFound) {
		e.logger.Warn().Err(err).Str("func", "executorService.Execute").
			Str("operation_id", op.ID).
			Msg("remote confirmed but local sync mark failed")
	}

	return nil
}

// upsert pushes the current local copy of the record when one still
// exists, falling back to the payload captured at enqueue time.
func (e *executorService) upsert(ctx context.Context, op models.OperationRecord) error {
	record, err := e.records.GetRecord(ctx, op.UserID, op.RecordKey())
	if errors.Is(err, store.ErrRecordNotFound) {
		record = models.Record{
			UserID:     op.UserID,
			Category:   op.Category,
			CategoryID: op.CategoryID,
			Payload:    op.Payload,
			Sync: models.SyncMetadata{
				LastModifiedAt: op.LastModifiedAt,
			},
		}
	} else if err != nil {
		return fmt.Errorf("load local record for %s: %w", op.ID, err)
	}

	payload, err := preparePayload(record.Category, record.Payload)
	if err != nil {
		return models.NewSyncError(models.KindValidation, "execute", record.Category, err)
	}
	record.Payload = payload

	return e.remote.Upsert(ctx, record)
}

// preparePayload decodes raw into the category's typed payload, fills
// documented defaults, and re-serializes. Malformed payloads come back
// as validation errors so the drain loop never retries them.
func preparePayload(category models.DataCategory, raw []byte) ([]byte, error) {
	decoded, err := models.DecodePayload(category, raw)
	if err != nil {
		return nil, err
	}

	if profile, ok := decoded.(models.ProfileData); ok && profile.DisplayName == "" {
		profile.DisplayName = defaultDisplayName(profile.Email)
		return json.Marshal(profile)
	}

	return raw, nil
}

// defaultDisplayName derives a display name from the email's local part,
// falling back to "User" when no usable email is present.
func defaultDisplayName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if found && local != "" {
		return local
	}
	return "User"
}

// backoffDelay returns min(base × 2^(retryCount−1), max). A retryCount
// of zero means a first attempt and gets no delay.
func backoffDelay(retryCount int, base, max time.Duration) time.Duration {
	if retryCount <= 0 || base <= 0 {
		return 0
	}

	delay := base
	for i := 1; i < retryCount; i++ {
		delay *= 2
		if delay >= max || delay < 0 {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
