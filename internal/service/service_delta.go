// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type deltaService struct {
	records   store.LocalRecordRepository
	state     store.KVStateRepository
	remote    adapter.RemoteStore
	conflicts ConflictService
	logger    *logger.Logger
}

func NewDeltaService(records store.LocalRecordRepository, state store.KVStateRepository,
	remote adapter.RemoteStore, conflicts ConflictService, logger *logger.Logger) DeltaService {
	return &deltaService{
		records:   records,
		state:     state,
		remote:    remote,
		conflicts: conflicts,
		logger:    logger,
	}
}

func deltaKey(userID string, category models.DataCategory) string {
	return fmt.Sprintf("fitkeeper:delta:%s:%s", userID, category)
}

func (d *deltaService) Refresh(ctx context.Context, userID string, category models.DataCategory) (models.SyncedItems, error) {
	info, err := d.loadInfo(ctx, userID, category)
	if err != nil {
		return models.SyncedItems{}, err
	}

	var rows []models.Record
	if info.LastSyncTimestamp.IsZero() {
		rows, err = d.remote.Fetch(ctx, userID, category)
	} else {
		rows, err = d.remote.FetchUpdatedSince(ctx, userID, category, info.LastSyncTimestamp)
	}
	if err != nil {
		return models.SyncedItems{}, err
	}

	var (
		items     models.SyncedItems
		observed  time.Time
		checksums = make(map[string]string, len(rows))
	)

	for _, row := range rows {
		// The watermark must move on the same clock the updated-since
		// filter queries: the server-maintained updated_at. A device
		// clock running ahead would otherwise push the cursor past
		// rows other devices write in that window.
		stamp := row.Sync.UpdatedAt
		if stamp.IsZero() {
			stamp = row.Sync.LastModifiedAt
		}
		if stamp.After(observed) {
			observed = stamp
		}

		if row.Deleted {
			delete(info.Checksums, row.CategoryID)
			if err := d.applyTombstone(ctx, userID, row); err != nil {
				return items, err
			}
			items.Downloaded++
			continue
		}

		sum := utils.Checksum(row.Payload)
		checksums[row.CategoryID] = sum

		// Unchanged content needs no local write even when the remote
		// row's timestamp moved past the watermark.
		if info.Checksums[row.CategoryID] == sum {
			continue
		}

		adopted, conflicted, err := d.adopt(ctx, userID, row)
		if err != nil {
			return items, err
		}
		if adopted {
			items.Downloaded++
		}
		if conflicted {
			items.Conflicts++
		}
	}

	info.Advance(observed, checksums)
	if err := d.saveInfo(ctx, userID, category, info); err != nil {
		return items, err
	}

	d.logger.Debug().Str("func", "deltaService.Refresh").
		Str("category", category.String()).
		Int("fetched", len(rows)).
		Int("downloaded", items.Downloaded).
		Int("conflicts", items.Conflicts).
		Time("watermark", info.LastSyncTimestamp).
		Msg("delta pass finished")

	return items, nil
}

// adopt merges one remote row into the local store, resolving a
// conflict when a divergent local copy exists.
func (d *deltaService) adopt(ctx context.Context, userID string, row models.Record) (adopted, conflicted bool, err error) {
	local, err := d.records.GetRecord(ctx, userID, row.Key())
	if errors.Is(err, store.ErrRecordNotFound) {
		row.Sync.Dirty = false
		if err := d.records.SaveRecord(ctx, row); err != nil {
			return false, false, fmt.Errorf("adopt remote record: %w", err)
		}
		return true, false, nil
	}
	if err != nil {
		return false, false, err
	}

	if utils.Checksum(local.Payload) == utils.Checksum(row.Payload) {
		return false, false, nil
	}

	winner, err := d.conflicts.Resolve(ctx, local, row)
	if err != nil {
		return false, false, err
	}
	if utils.Checksum(winner.Payload) == utils.Checksum(row.Payload) {
		winner.Sync.Dirty = false
	}
	if err := d.records.SaveRecord(ctx, winner); err != nil {
		return false, true, fmt.Errorf("persist conflict winner: %w", err)
	}
	return true, true, nil
}

func (d *deltaService) applyTombstone(ctx context.Context, userID string, row models.Record) error {
	err := d.records.DeleteRecord(ctx, userID, row.Key())
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("apply remote tombstone: %w", err)
	}
	return nil
}

func (d *deltaService) LastSync(ctx context.Context, userID string) (map[models.DataCategory]time.Time, error) {
	marks := make(map[models.DataCategory]time.Time, len(models.AllDataCategories))
	for _, category := range models.AllDataCategories {
		info, err := d.loadInfo(ctx, userID, category)
		if err != nil {
			return nil, err
		}
		if !info.LastSyncTimestamp.IsZero() {
			marks[category] = info.LastSyncTimestamp
		}
	}
	return marks, nil
}

func (d *deltaService) loadInfo(ctx context.Context, userID string, category models.DataCategory) (models.DeltaSyncInfo, error) {
	var info models.DeltaSyncInfo

	raw, err := d.state.Get(ctx, deltaKey(userID, category))
	if errors.Is(err, store.ErrStateNotFound) {
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("load delta state: %w", err)
	}

	if err := json.Unmarshal(raw, &info); err != nil {
		// A corrupt cursor only costs one full fetch.
		d.logger.Warn().Err(err).Str("func", "deltaService.loadInfo").
			Str("category", category.String()).
			Msg("delta state corrupt, resetting cursor")
		return models.DeltaSyncInfo{}, nil
	}
	return info, nil
}

func (d *deltaService) saveInfo(ctx context.Context, userID string, category models.DataCategory, info models.DeltaSyncInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal delta state: %w", err)
	}
	if err := d.state.Set(ctx, deltaKey(userID, category), raw); err != nil {
		return fmt.Errorf("persist delta state: %w", err)
	}
	return nil
}
