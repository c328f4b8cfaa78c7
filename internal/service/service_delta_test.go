// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/mock"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func newTestDelta(t *testing.T) (*deltaService, *mock.MockLocalRecordRepository, *mock.MockKVStateRepository, *mock.MockRemoteStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock.NewMockLocalRecordRepository(ctrl)
	state := mock.NewMockKVStateRepository(ctrl)
	remote := mock.NewMockRemoteStore(ctrl)

	audit := mock.NewMockConflictAuditRepository(ctrl)
	audit.EXPECT().SaveConflict(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	conflicts := NewConflictService(audit, models.StrategyAuto, logger.Nop())

	d := NewDeltaService(records, state, remote, conflicts, logger.Nop()).(*deltaService)
	return d, records, state, remote
}

func remoteWorkout(id string, modified time.Time) models.Record {
	return models.Record{
		UserID:     "user-1",
		Category:   models.CategoryWorkouts,
		CategoryID: id,
		Payload:    []byte(`{"name":"Workout ` + id + `","duration_sec":1800}`),
		Sync:       models.SyncMetadata{LastModifiedAt: modified},
	}
}

func deltaCursor(t *testing.T, info models.DeltaSyncInfo) []byte {
	t.Helper()
	raw, err := json.Marshal(info)
	require.NoError(t, err)
	return raw
}

func TestDelta_FirstPassFetchesEverything(t *testing.T) {
	d, records, state, remote := newTestDelta(t)

	modified := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	rows := []models.Record{
		remoteWorkout("w-1", modified.Add(-time.Hour)),
		remoteWorkout("w-2", modified),
	}

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).Return(nil, store.ErrStateNotFound)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).Return(rows, nil)
	records.EXPECT().GetRecord(gomock.Any(), "user-1", gomock.Any()).
		Return(models.Record{}, store.ErrRecordNotFound).Times(2)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, raw []byte) error {
			var info models.DeltaSyncInfo
			require.NoError(t, json.Unmarshal(raw, &info))
			assert.Equal(t, modified, info.LastSyncTimestamp.UTC(), "watermark is the newest observed timestamp")
			assert.Len(t, info.Checksums, 2)
			return nil
		})

	items, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
	assert.Equal(t, 2, items.Downloaded)
	assert.Equal(t, 0, items.Conflicts)
}

func TestDelta_SubsequentPassUsesWatermark(t *testing.T) {
	d, _, state, remote := newTestDelta(t)

	watermark := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).
		Return(deltaCursor(t, models.DeltaSyncInfo{LastSyncTimestamp: watermark, SyncVersion: 3}), nil)
	remote.EXPECT().FetchUpdatedSince(gomock.Any(), "user-1", models.CategoryWorkouts, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.DataCategory, since time.Time) ([]models.Record, error) {
			assert.True(t, since.Equal(watermark))
			return nil, nil
		})
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).Return(nil)

	items, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
	assert.Zero(t, items.Downloaded)
}

func TestDelta_UnchangedChecksumSkipsWrite(t *testing.T) {
	d, _, state, remote := newTestDelta(t)

	watermark := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	row := remoteWorkout("w-1", watermark.Add(time.Minute))

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).Return(deltaCursor(t, models.DeltaSyncInfo{
		LastSyncTimestamp: watermark,
		Checksums:         map[string]string{"w-1": utils.Checksum(row.Payload)},
	}), nil)
	remote.EXPECT().FetchUpdatedSince(gomock.Any(), "user-1", models.CategoryWorkouts, gomock.Any()).
		Return([]models.Record{row}, nil)
	// no GetRecord, no SaveRecord: the content fingerprint matches
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).Return(nil)

	items, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
	assert.Zero(t, items.Downloaded)
}

func TestDelta_TombstoneDeletesLocally(t *testing.T) {
	d, records, state, remote := newTestDelta(t)

	watermark := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	tombstone := remoteWorkout("w-1", watermark.Add(time.Minute))
	tombstone.Deleted = true
	tombstone.Payload = nil

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).Return(deltaCursor(t, models.DeltaSyncInfo{
		LastSyncTimestamp: watermark,
		Checksums:         map[string]string{"w-1": "stale-sum"},
	}), nil)
	remote.EXPECT().FetchUpdatedSince(gomock.Any(), "user-1", models.CategoryWorkouts, gomock.Any()).
		Return([]models.Record{tombstone}, nil)
	records.EXPECT().DeleteRecord(gomock.Any(), "user-1", tombstone.Key()).Return(nil)
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, raw []byte) error {
			var info models.DeltaSyncInfo
			require.NoError(t, json.Unmarshal(raw, &info))
			assert.NotContains(t, info.Checksums, "w-1", "tombstoned ids leave the checksum map")
			return nil
		})

	items, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
	assert.Equal(t, 1, items.Downloaded)
}

func TestDelta_DivergentRowCountsAsConflict(t *testing.T) {
	d, records, state, remote := newTestDelta(t)

	base := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	row := remoteWorkout("w-1", base.Add(time.Minute))

	local := row
	local.Payload = []byte(`{"name":"Workout w-1 local edit","duration_sec":2400}`)
	local.Sync = models.SyncMetadata{LastModifiedAt: base.Add(-time.Hour), Dirty: true}

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).Return(nil, store.ErrStateNotFound)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{row}, nil)
	records.EXPECT().GetRecord(gomock.Any(), "user-1", row.Key()).Return(local, nil)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, saved models.Record) error {
			assert.Equal(t, row.Payload, saved.Payload, "the newer remote copy wins")
			assert.False(t, saved.Sync.Dirty)
			return nil
		})
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).Return(nil)

	items, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
	assert.Equal(t, 1, items.Downloaded)
	assert.Equal(t, 1, items.Conflicts)
}

func TestDelta_WatermarkNeverRewinds(t *testing.T) {
	d, records, state, remote := newTestDelta(t)

	watermark := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	stale := remoteWorkout("w-9", watermark.Add(-48*time.Hour))

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).
		Return(deltaCursor(t, models.DeltaSyncInfo{LastSyncTimestamp: watermark}), nil)
	remote.EXPECT().FetchUpdatedSince(gomock.Any(), "user-1", models.CategoryWorkouts, gomock.Any()).
		Return([]models.Record{stale}, nil)
	records.EXPECT().GetRecord(gomock.Any(), "user-1", stale.Key()).
		Return(models.Record{}, store.ErrRecordNotFound)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, raw []byte) error {
			var info models.DeltaSyncInfo
			require.NoError(t, json.Unmarshal(raw, &info))
			assert.Equal(t, watermark, info.LastSyncTimestamp.UTC())
			return nil
		})

	_, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
}

func TestDelta_WatermarkFollowsServerClock(t *testing.T) {
	d, records, state, remote := newTestDelta(t)

	serverNow := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	row := remoteWorkout("w-1", serverNow.Add(3*time.Hour)) // device clock runs ahead
	row.Sync.UpdatedAt = serverNow

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).Return(nil, store.ErrStateNotFound)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{row}, nil)
	records.EXPECT().GetRecord(gomock.Any(), "user-1", row.Key()).
		Return(models.Record{}, store.ErrRecordNotFound)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, raw []byte) error {
			var info models.DeltaSyncInfo
			require.NoError(t, json.Unmarshal(raw, &info))
			assert.Equal(t, serverNow, info.LastSyncTimestamp.UTC(),
				"watermark tracks updated_at, not the device-reported modification time")
			return nil
		})

	_, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
}

func TestDelta_CorruptCursorResetsToFullFetch(t *testing.T) {
	d, _, state, remote := newTestDelta(t)

	key := deltaKey("user-1", models.CategoryWorkouts)
	state.EXPECT().Get(gomock.Any(), key).Return([]byte("{broken"), nil)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).Return(nil, nil)
	state.EXPECT().Set(gomock.Any(), key, gomock.Any()).Return(nil)

	_, err := d.Refresh(context.Background(), "user-1", models.CategoryWorkouts)

	require.NoError(t, err)
}

func TestDelta_LastSyncCollectsWatermarks(t *testing.T) {
	d, _, state, _ := newTestDelta(t)

	watermark := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	for _, category := range models.AllDataCategories {
		if category == models.CategoryWorkouts {
			state.EXPECT().Get(gomock.Any(), deltaKey("user-1", category)).
				Return(deltaCursor(t, models.DeltaSyncInfo{LastSyncTimestamp: watermark}), nil)
			continue
		}
		state.EXPECT().Get(gomock.Any(), deltaKey("user-1", category)).
			Return(nil, store.ErrStateNotFound)
	}

	marks, err := d.LastSync(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.True(t, marks[models.CategoryWorkouts].Equal(watermark))
}
