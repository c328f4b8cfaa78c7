// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/mock"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func newTestCoordinator(t *testing.T) (*coordinatorService, *mock.MockLocalRecordRepository, *mock.MockRemoteStore, *queueService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock.NewMockLocalRecordRepository(ctrl)
	remote := mock.NewMockRemoteStore(ctrl)

	state := mock.NewMockKVStateRepository(ctrl)
	state.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	queue := NewQueueService(state, logger.Nop()).(*queueService)

	audit := mock.NewMockConflictAuditRepository(ctrl)
	audit.EXPECT().SaveConflict(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	conflicts := NewConflictService(audit, models.StrategyAuto, logger.Nop())

	cfg := config.Sync{CacheTTL: time.Minute}
	c := NewCoordinatorService(records, remote, queue, conflicts, cfg, "device-1", logger.Nop()).(*coordinatorService)
	return c, records, remote, queue
}

func workoutRecord() models.Record {
	return models.Record{
		UserID:     "user-1",
		Category:   models.CategoryWorkouts,
		CategoryID: "w-1",
		Payload:    []byte(`{"name":"Push Day","started_at":1700000000,"duration_sec":3000}`),
	}
}

func networkErr(op string) error {
	return models.NewSyncError(models.KindNetwork, op, models.CategoryWorkouts, errors.New("connection refused"))
}

func TestCoordinator_SyncToRemote_Success(t *testing.T) {
	c, records, remote, queue := newTestCoordinator(t)

	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) error {
			assert.Equal(t, int64(1), record.Sync.SyncVersion, "first write bumps version to 1")
			assert.Equal(t, "device-1", record.Sync.DeviceID)
			assert.True(t, record.Sync.Dirty)
			assert.False(t, record.Sync.LastModifiedAt.IsZero())
			return nil
		})
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	records.EXPECT().MarkSynced(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(nil)

	result, err := c.SyncToRemote(context.Background(), workoutRecord())

	require.NoError(t, err)
	assert.False(t, result.Queued)
	assert.Equal(t, 0, queue.Len())
}

func TestCoordinator_SyncToRemote_NetworkFailureQueues(t *testing.T) {
	c, records, remote, queue := newTestCoordinator(t)

	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(networkErr("upsert"))

	result, err := c.SyncToRemote(context.Background(), workoutRecord())

	require.NoError(t, err, "a network failure is non-fatal once the operation is queued")
	assert.True(t, result.Queued)
	assert.NotEmpty(t, result.OperationID)

	pending := queue.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, models.OpCreate, pending[0].Type)
	assert.Equal(t, "w-1", pending[0].CategoryID)
}

func TestCoordinator_SyncToRemote_UpdateQueuesAsUpdate(t *testing.T) {
	c, records, remote, queue := newTestCoordinator(t)

	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(networkErr("upsert"))

	record := workoutRecord()
	record.Sync.SyncVersion = 4 // existing record, Touch makes it 5

	result, err := c.SyncToRemote(context.Background(), record)

	require.NoError(t, err)
	assert.True(t, result.Queued)
	require.Len(t, queue.Pending(), 1)
	assert.Equal(t, models.OpUpdate, queue.Pending()[0].Type)
}

func TestCoordinator_SyncToRemote_NonNetworkFailureIsReturned(t *testing.T) {
	c, records, remote, queue := newTestCoordinator(t)

	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		Return(models.NewSyncError(models.KindValidation, "upsert", models.CategoryWorkouts, assert.AnError))

	_, err := c.SyncToRemote(context.Background(), workoutRecord())

	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
	assert.Equal(t, 0, queue.Len(), "non-network failures are never queued")
}

func TestCoordinator_SyncToRemote_SingletonDefaultsID(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	record := models.Record{
		UserID:   "user-1",
		Category: models.CategoryProfile,
		Payload:  []byte(`{"display_name":"Anna","email":"anna@example.com"}`),
	}

	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, saved models.Record) error {
			assert.Equal(t, models.SingletonID, saved.CategoryID)
			return nil
		})
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	records.EXPECT().MarkSynced(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := c.SyncToRemote(context.Background(), record)

	require.NoError(t, err)
}

func TestCoordinator_SyncToRemote_MissingIdentity(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)

	_, err := c.SyncToRemote(context.Background(), models.Record{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrRecordRequired)

	_, err = c.SyncToRemote(context.Background(), models.Record{
		UserID:   "user-1",
		Category: models.CategoryWorkouts, // collection without id
	})
	assert.ErrorIs(t, err, ErrRecordRequired)
}

func TestCoordinator_SyncFromRemote_AdoptsRemoteCopy(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	want := workoutRecord()
	want.Sync.LastModifiedAt = time.Now()

	records.EXPECT().GetRecord(gomock.Any(), "user-1", want.Key()).
		Return(models.Record{}, store.ErrRecordNotFound)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{want}, nil)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, saved models.Record) error {
			assert.False(t, saved.Sync.Dirty, "adopted remote copies are clean")
			return nil
		})

	got, err := c.SyncFromRemote(context.Background(), "user-1", want.Key())

	require.NoError(t, err)
	assert.Equal(t, want.Payload, got.Payload)
}

func TestCoordinator_SyncFromRemote_ServesCacheWithinTTL(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	local := workoutRecord()
	key := local.Key()

	records.EXPECT().GetRecord(gomock.Any(), "user-1", key).Return(local, nil).Times(2)
	// one remote fetch only: the second read must be served locally
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{local}, nil).Times(1)

	_, err := c.SyncFromRemote(context.Background(), "user-1", key)
	require.NoError(t, err)

	got, err := c.SyncFromRemote(context.Background(), "user-1", key)
	require.NoError(t, err)
	assert.Equal(t, local.Payload, got.Payload)
}

func TestCoordinator_SyncFromRemote_NetworkFallbackToLocal(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	local := workoutRecord()
	records.EXPECT().GetRecord(gomock.Any(), "user-1", local.Key()).Return(local, nil)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return(nil, networkErr("fetch"))

	got, err := c.SyncFromRemote(context.Background(), "user-1", local.Key())

	require.NoError(t, err)
	assert.Equal(t, local.Payload, got.Payload)
}

func TestCoordinator_SyncFromRemote_NoLocalAndOfflinePropagates(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	key := workoutRecord().Key()
	records.EXPECT().GetRecord(gomock.Any(), "user-1", key).
		Return(models.Record{}, store.ErrRecordNotFound)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return(nil, networkErr("fetch"))

	_, err := c.SyncFromRemote(context.Background(), "user-1", key)

	require.Error(t, err)
	assert.Equal(t, models.KindNetwork, models.KindOf(err))
}

func TestCoordinator_SyncFromRemote_ResolvesConflictRemoteWins(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	local := workoutRecord()
	local.Sync = models.SyncMetadata{LastModifiedAt: base, Dirty: true}

	remoteCopy := local
	remoteCopy.Payload = []byte(`{"name":"Push Day v2","started_at":1700000000,"duration_sec":3100}`)
	remoteCopy.Sync = models.SyncMetadata{LastModifiedAt: base.Add(time.Minute)}

	records.EXPECT().GetRecord(gomock.Any(), "user-1", local.Key()).Return(local, nil)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{remoteCopy}, nil)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, saved models.Record) error {
			assert.Equal(t, remoteCopy.Payload, saved.Payload)
			assert.False(t, saved.Sync.Dirty)
			return nil
		})

	got, err := c.SyncFromRemote(context.Background(), "user-1", local.Key())

	require.NoError(t, err)
	assert.Equal(t, remoteCopy.Payload, got.Payload)
}

func TestCoordinator_SyncFromRemote_LocalWinnerStaysDirty(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	local := workoutRecord()
	local.Sync = models.SyncMetadata{LastModifiedAt: base.Add(time.Minute), Dirty: true}

	remoteCopy := local
	remoteCopy.Payload = []byte(`{"name":"Stale","started_at":1700000000,"duration_sec":100}`)
	remoteCopy.Sync = models.SyncMetadata{LastModifiedAt: base}

	records.EXPECT().GetRecord(gomock.Any(), "user-1", local.Key()).Return(local, nil)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{remoteCopy}, nil)
	records.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, saved models.Record) error {
			assert.Equal(t, local.Payload, saved.Payload)
			assert.True(t, saved.Sync.Dirty, "the local winner still needs its upstream push")
			return nil
		})

	got, err := c.SyncFromRemote(context.Background(), "user-1", local.Key())

	require.NoError(t, err)
	assert.Equal(t, local.Payload, got.Payload)
}

func TestCoordinator_SyncFromRemote_AppliesTombstone(t *testing.T) {
	c, records, remote, _ := newTestCoordinator(t)

	local := workoutRecord()
	tombstone := local
	tombstone.Deleted = true
	tombstone.Payload = nil

	records.EXPECT().GetRecord(gomock.Any(), "user-1", local.Key()).Return(local, nil)
	remote.EXPECT().Fetch(gomock.Any(), "user-1", models.CategoryWorkouts).
		Return([]models.Record{tombstone}, nil)
	records.EXPECT().DeleteRecord(gomock.Any(), "user-1", local.Key()).Return(nil)

	_, err := c.SyncFromRemote(context.Background(), "user-1", local.Key())

	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestCoordinator_SyncFromRemote_ConcurrentCallerRejected(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)

	key := workoutRecord().Key()
	require.True(t, c.acquire("user-1", key))

	_, err := c.SyncFromRemote(context.Background(), "user-1", key)

	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestCoordinator_Delete_NetworkFailureQueuesTombstone(t *testing.T) {
	c, records, remote, queue := newTestCoordinator(t)

	key := workoutRecord().Key()
	records.EXPECT().DeleteRecord(gomock.Any(), "user-1", key).Return(nil)
	remote.EXPECT().Delete(gomock.Any(), "user-1", key).Return(networkErr("delete"))

	result, err := c.Delete(context.Background(), "user-1", key)

	require.NoError(t, err)
	assert.True(t, result.Queued)

	pending := queue.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, models.OpDelete, pending[0].Type)
	assert.Empty(t, pending[0].Payload, "delete operations carry no payload")
}
