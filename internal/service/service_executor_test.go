// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
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

func newTestExecutor(t *testing.T) (*executorService, *mock.MockLocalRecordRepository, *mock.MockRemoteStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	records := mock.NewMockLocalRecordRepository(ctrl)
	remote := mock.NewMockRemoteStore(ctrl)

	cfg := config.Sync{
		MaxRetries: 5,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}
	e := NewExecutorService(records, remote, cfg, logger.Nop()).(*executorService)
	return e, records, remote
}

func TestBackoffDelay(t *testing.T) {
	base := time.Second
	max := 30 * time.Second

	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, 0},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 30 * time.Second},
		{50, 30 * time.Second},
	}

	for _, tt := range tests {
		got := backoffDelay(tt.retryCount, base, max)
		assert.Equal(t, tt.want, got, "retry %d", tt.retryCount)
	}
}

func TestExecutorService_UpsertUsesCurrentLocalCopy(t *testing.T) {
	e, records, remote := newTestExecutor(t)

	op := testOp("op-1")
	local := models.Record{
		UserID:     op.UserID,
		Category:   op.Category,
		CategoryID: op.CategoryID,
		Payload:    []byte(`{"name":"Leg Day","started_at":1700000000,"duration_sec":2700}`),
		Sync:       models.SyncMetadata{SyncVersion: 3, Dirty: true},
	}

	records.EXPECT().GetRecord(gomock.Any(), op.UserID, op.RecordKey()).Return(local, nil)
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) error {
			assert.Equal(t, local.Payload, record.Payload, "the local copy is the source of truth")
			assert.Equal(t, int64(3), record.Sync.SyncVersion)
			return nil
		})
	records.EXPECT().MarkSynced(gomock.Any(), op.UserID, op.RecordKey(), gomock.Any()).Return(nil)

	require.NoError(t, e.Execute(context.Background(), op))
}

func TestExecutorService_UpsertFallsBackToEnqueuedPayload(t *testing.T) {
	e, records, remote := newTestExecutor(t)

	op := testOp("op-1")
	op.Payload = []byte(`{"name":"Ghost","started_at":1700000000,"duration_sec":60}`)

	records.EXPECT().GetRecord(gomock.Any(), op.UserID, op.RecordKey()).
		Return(models.Record{}, store.ErrRecordNotFound)
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) error {
			assert.Equal(t, op.Payload, record.Payload)
			return nil
		})
	records.EXPECT().MarkSynced(gomock.Any(), op.UserID, op.RecordKey(), gomock.Any()).
		Return(store.ErrRecordNotFound)

	require.NoError(t, e.Execute(context.Background(), op))
}

func TestExecutorService_DeleteDispatch(t *testing.T) {
	e, records, remote := newTestExecutor(t)

	op := testOp("op-1")
	op.Type = models.OpDelete
	op.Payload = nil

	remote.EXPECT().Delete(gomock.Any(), op.UserID, op.RecordKey()).Return(nil)
	records.EXPECT().MarkSynced(gomock.Any(), op.UserID, op.RecordKey(), gomock.Any()).Return(nil)

	require.NoError(t, e.Execute(context.Background(), op))
}

func TestExecutorService_MalformedPayloadFailsValidation(t *testing.T) {
	e, records, _ := newTestExecutor(t)

	op := testOp("op-1")
	op.Payload = []byte(`{"name":`)

	records.EXPECT().GetRecord(gomock.Any(), op.UserID, op.RecordKey()).
		Return(models.Record{}, store.ErrRecordNotFound)

	err := e.Execute(context.Background(), op)

	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
	assert.False(t, models.KindOf(err).Retryable())
}

func TestExecutorService_UnknownOperationType(t *testing.T) {
	e, _, _ := newTestExecutor(t)

	op := testOp("op-1")
	op.Type = "upsert-maybe"

	err := e.Execute(context.Background(), op)

	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestExecutorService_ProfileDisplayNameDefaults(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"from email local part", "anna@example.com", "anna"},
		{"no usable email", "", "User"},
		{"email without local part", "@example.com", "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, records, remote := newTestExecutor(t)

			payload, err := json.Marshal(models.ProfileData{Email: tt.email})
			require.NoError(t, err)

			op := testOp("op-1")
			op.Category = models.CategoryProfile
			op.CategoryID = models.SingletonID
			op.Payload = payload

			records.EXPECT().GetRecord(gomock.Any(), op.UserID, op.RecordKey()).
				Return(models.Record{}, store.ErrRecordNotFound)
			remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, record models.Record) error {
					var profile models.ProfileData
					require.NoError(t, json.Unmarshal(record.Payload, &profile))
					assert.Equal(t, tt.want, profile.DisplayName)
					return nil
				})
			records.EXPECT().MarkSynced(gomock.Any(), op.UserID, op.RecordKey(), gomock.Any()).
				Return(nil)

			require.NoError(t, e.Execute(context.Background(), op))
		})
	}
}

func TestExecutorService_RemoteFailurePropagatesKind(t *testing.T) {
	e, records, remote := newTestExecutor(t)

	op := testOp("op-1")
	records.EXPECT().GetRecord(gomock.Any(), op.UserID, op.RecordKey()).
		Return(models.Record{}, store.ErrRecordNotFound)
	remote.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		Return(models.NewSyncError(models.KindPermission, "upsert", op.Category, assert.AnError))

	err := e.Execute(context.Background(), op)

	require.Error(t, err)
	assert.Equal(t, models.KindPermission, models.KindOf(err))
}

func TestExecutorService_BackoffRespectsCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := mock.NewMockLocalRecordRepository(ctrl)
	remote := mock.NewMockRemoteStore(ctrl)

	cfg := config.Sync{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	e := NewExecutorService(records, remote, cfg, logger.Nop())

	op := testOp("op-1")
	op.RetryCount = 2

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Execute(ctx, op)

	assert.True(t, errors.Is(err, context.Canceled))
}
