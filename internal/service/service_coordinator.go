// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type coordinatorService struct {
	records   store.LocalRecordRepository
	remote    adapter.RemoteStore
	queue     QueueService
	conflicts ConflictService
	deviceID  string
	cacheTTL  time.Duration
	ids       *utils.UUIDGenerator
	logger    *logger.Logger
	now       func() time.Time

	mu        sync.Mutex
	inFlight  map[string]struct{}
	fetchedAt map[string]time.Time
}

func NewCoordinatorService(records store.LocalRecordRepository, remote adapter.RemoteStore,
	queue QueueService, conflicts ConflictService, cfg config.Sync, deviceID string,
	logger *logger.Logger) CoordinatorService {
	return &coordinatorService{
		records:   records,
		remote:    remote,
		queue:     queue,
		conflicts: conflicts,
		deviceID:  deviceID,
		cacheTTL:  cfg.CacheTTL,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (c *coordinatorService) SyncToRemote(ctx context.Context, record models.Record) (WriteResult, error) {
	if record.Category == "" || record.UserID == "" {
		return WriteResult{}, ErrRecordRequired
	}
	if record.CategoryID == "" {
		if !record.Category.Singleton() {
			return WriteResult{}, ErrRecordRequired
		}
		record.CategoryID = models.SingletonID
	}

	record.Touch(c.deviceID, c.now())

	// The local write is the source of truth; remote propagation may
	// lag but the record is never lost once this save succeeds.
	if err := c.records.SaveRecord(ctx, record); err != nil {
		return WriteResult{}, fmt.Errorf("save record locally: %w", err)
	}

	err := c.remote.Upsert(ctx, record)
	if err == nil {
		if err := c.records.MarkSynced(ctx, record.UserID, record.Key(), c.now()); err != nil {
			c.logger.Warn().Err(err).Str("func", "coordinatorService.SyncToRemote").
				Str("record", record.Key().String()).
				Msg("remote confirmed but local sync mark failed")
		}
		c.invalidateCache(record.UserID, record.Key())
		return WriteResult{}, nil
	}

	if !models.IsNetworkError(err) {
		return WriteResult{}, err
	}

	opType := models.OpCreate
	if record.Sync.SyncVersion > 1 {
		opType = models.OpUpdate
	}
	return c.enqueue(ctx, opType, record)
}

func (c *coordinatorService) SyncFromRemote(ctx context.Context, userID string, key models.RecordKey) (models.Record, error) {
	if !c.acquire(userID, key) {
		return models.Record{}, ErrSyncInProgress
	}
	defer c.release(userID, key)

	local, localErr := c.records.GetRecord(ctx, userID, key)
	hasLocal := localErr == nil
	if localErr != nil && !errors.Is(localErr, store.ErrRecordNotFound) {
		return models.Record{}, localErr
	}

	if hasLocal && c.cacheFresh(userID, key) {
		return local, nil
	}

	remote, found, err := c.fetchOne(ctx, userID, key)
	if err != nil {
		if models.IsNetworkError(err) && hasLocal {
			c.logger.Debug().Str("func", "coordinatorService.SyncFromRemote").
				Str("record", key.String()).
				Msg("remote unreachable, serving local copy")
			return local, nil
		}
		return models.Record{}, err
	}

	c.markFetched(userID, key)

	if !found {
		if hasLocal {
			return local, nil
		}
		return models.Record{}, store.ErrRecordNotFound
	}

	if remote.Deleted {
		if hasLocal {
			if err := c.records.DeleteRecord(ctx, userID, key); err != nil {
				return models.Record{}, fmt.Errorf("apply remote tombstone: %w", err)
			}
		}
		return models.Record{}, store.ErrRecordNotFound
	}

	if !hasLocal {
		remote.Sync.Dirty = false
		if err := c.records.SaveRecord(ctx, remote); err != nil {
			return models.Record{}, fmt.Errorf("adopt remote record: %w", err)
		}
		return remote, nil
	}

	if utils.Checksum(local.Payload) == utils.Checksum(remote.Payload) {
		return local, nil
	}

	winner, err := c.conflicts.Resolve(ctx, local, remote)
	if err != nil {
		return models.Record{}, err
	}

	// An adopted remote copy is clean by definition; a winning local
	// copy stays dirty until the next upstream push.
	if utils.Checksum(winner.Payload) == utils.Checksum(remote.Payload) {
		winner.Sync.Dirty = false
	}
	if err := c.records.SaveRecord(ctx, winner); err != nil {
		return models.Record{}, fmt.Errorf("persist conflict winner: %w", err)
	}

	return winner, nil
}

func (c *coordinatorService) Delete(ctx context.Context, userID string, key models.RecordKey) (WriteResult, error) {
	if err := c.records.DeleteRecord(ctx, userID, key); err != nil {
		return WriteResult{}, fmt.Errorf("delete record locally: %w", err)
	}
	c.invalidateCache(userID, key)

	err := c.remote.Delete(ctx, userID, key)
	if err == nil {
		return WriteResult{}, nil
	}
	if !models.IsNetworkError(err) {
		return WriteResult{}, err
	}

	record := models.Record{
		UserID:     userID,
		Category:   key.Category,
		CategoryID: key.CategoryID,
		Sync:       models.SyncMetadata{LastModifiedAt: c.now()},
	}
	return c.enqueue(ctx, models.OpDelete, record)
}

func (c *coordinatorService) enqueue(ctx context.Context, opType models.OperationType, record models.Record) (WriteResult, error) {
	op := models.OperationRecord{
		ID:             c.ids.Generate(),
		Type:           opType,
		Category:       record.Category,
		CategoryID:     record.CategoryID,
		UserID:         record.UserID,
		Payload:        record.Payload,
		EnqueuedAt:     c.now(),
		LastModifiedAt: record.Sync.LastModifiedAt,
		Status:         models.StatusPending,
	}
	if opType == models.OpDelete {
		op.Payload = nil
	}

	if err := c.queue.Enqueue(ctx, op); err != nil {
		return WriteResult{}, err
	}

	c.logger.Info().Str("func", "coordinatorService.enqueue").
		Str("operation_id", op.ID).
		Str("record", record.Key().String()).
		Msg("remote unreachable, operation queued")

	return WriteResult{Queued: true, OperationID: op.ID}, nil
}

// fetchOne retrieves the remote copy of one record. The remote store
// exposes per-category reads only, so collections are filtered here.
func (c *coordinatorService) fetchOne(ctx context.Context, userID string, key models.RecordKey) (models.Record, bool, error) {
	rows, err := c.remote.Fetch(ctx, userID, key.Category)
	if err != nil {
		return models.Record{}, false, err
	}

	for _, row := range rows {
		if row.CategoryID == key.CategoryID {
			return row, true, nil
		}
	}
	return models.Record{}, false, nil
}

func (c *coordinatorService) acquire(userID string, key models.RecordKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight == nil {
		c.inFlight = make(map[string]struct{})
	}
	ck := cacheKey(userID, key)
	if _, busy := c.inFlight[ck]; busy {
		return false
	}
	c.inFlight[ck] = struct{}{}
	return true
}

func (c *coordinatorService) release(userID string, key models.RecordKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, cacheKey(userID, key))
}

func (c *coordinatorService) cacheFresh(userID string, key models.RecordKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	at, ok := c.fetchedAt[cacheKey(userID, key)]
	return ok && c.now().Sub(at) < c.cacheTTL
}

func (c *coordinatorService) markFetched(userID string, key models.RecordKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchedAt == nil {
		c.fetchedAt = make(map[string]time.Time)
	}
	c.fetchedAt[cacheKey(userID, key)] = c.now()
}

func (c *coordinatorService) invalidateCache(userID string, key models.RecordKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fetchedAt, cacheKey(userID, key))
}

func cacheKey(userID string, key models.RecordKey) string {
	return userID + "/" + key.String()
}
