// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/mock"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func newTestQueue(t *testing.T) (*queueService, *mock.MockKVStateRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	state := mock.NewMockKVStateRepository(ctrl)
	q := NewQueueService(state, logger.Nop()).(*queueService)
	return q, state
}

func testOp(id string) models.OperationRecord {
	return models.OperationRecord{
		ID:         id,
		Type:       models.OpCreate,
		Category:   models.CategoryWorkouts,
		CategoryID: "w-" + id,
		UserID:     "user-1",
		Payload:    []byte(`{"name":"x"}`),
		Status:     models.StatusPending,
	}
}

func TestQueueService_EnqueuePersistsBeforeReturning(t *testing.T) {
	q, state := newTestQueue(t)

	persisted := false
	state.EXPECT().Set(gomock.Any(), queueStateKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, raw []byte) error {
			var ops []models.OperationRecord
			require.NoError(t, json.Unmarshal(raw, &ops))
			require.Len(t, ops, 1)
			assert.Equal(t, "op-1", ops[0].ID)
			persisted = true
			return nil
		})

	err := q.Enqueue(context.Background(), testOp("op-1"))

	require.NoError(t, err)
	assert.True(t, persisted, "queue must hit durable storage before Enqueue returns")
	assert.Equal(t, 1, q.Len())
}

func TestQueueService_EnqueueRollsBackOnPersistFailure(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Set(gomock.Any(), queueStateKey, gomock.Any()).Return(assert.AnError)

	err := q.Enqueue(context.Background(), testOp("op-1"))

	require.Error(t, err)
	assert.Equal(t, 0, q.Len(), "failed enqueue must not leave the operation in memory")
}

func TestQueueService_FIFOOrder(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Set(gomock.Any(), queueStateKey, gomock.Any()).Return(nil).Times(3)

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, testOp("op-1")))
	require.NoError(t, q.Enqueue(ctx, testOp("op-2")))
	require.NoError(t, q.Enqueue(ctx, testOp("op-3")))

	pending := q.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, "op-1", pending[0].ID)
	assert.Equal(t, "op-2", pending[1].ID)
	assert.Equal(t, "op-3", pending[2].ID)
}

func TestQueueService_CriticalOperationSignalsKick(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Set(gomock.Any(), queueStateKey, gomock.Any()).Return(nil).Times(2)

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, testOp("op-1")))

	select {
	case <-q.Kick():
		t.Fatal("non-critical operation must not signal the kick channel")
	default:
	}

	critical := testOp("op-2")
	critical.Critical = true
	require.NoError(t, q.Enqueue(ctx, critical))

	select {
	case <-q.Kick():
	default:
		t.Fatal("critical operation must signal the kick channel")
	}
}

func TestQueueService_LoadNormalizesProcessingToPending(t *testing.T) {
	q, state := newTestQueue(t)

	stored := []models.OperationRecord{testOp("op-1"), testOp("op-2")}
	stored[1].Status = models.StatusProcessing
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	state.EXPECT().Get(gomock.Any(), queueStateKey).Return(raw, nil)

	require.NoError(t, q.Load(context.Background()))

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, models.StatusPending, pending[1].Status,
		"processing must never survive a restart")
}

func TestQueueService_LoadMissingStateStartsEmpty(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Get(gomock.Any(), queueStateKey).Return(nil, store.ErrStateNotFound)

	require.NoError(t, q.Load(context.Background()))
	assert.Equal(t, 0, q.Len())
}

func TestQueueService_LoadCorruptStateStartsEmpty(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Get(gomock.Any(), queueStateKey).Return([]byte("{not json"), nil)

	err := q.Load(context.Background())

	require.NoError(t, err, "corrupt storage resets the queue, it never errors")
	assert.Equal(t, 0, q.Len())
}

func TestQueueService_RemoveDropsOperations(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Set(gomock.Any(), queueStateKey, gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, testOp("op-1")))
	require.NoError(t, q.Enqueue(ctx, testOp("op-2")))
	require.NoError(t, q.Enqueue(ctx, testOp("op-3")))

	require.NoError(t, q.Remove(ctx, "op-2", "op-unknown"))

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "op-1", pending[0].ID)
	assert.Equal(t, "op-3", pending[1].ID)
}

func TestQueueService_FailedOperationsLeaveActiveQueue(t *testing.T) {
	q, state := newTestQueue(t)
	state.EXPECT().Set(gomock.Any(), queueStateKey, gomock.Any()).Return(nil).AnyTimes()

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, testOp("op-1")))

	op := testOp("op-1")
	op.Status = models.StatusFailed
	op.LastError = "permission denied"
	require.NoError(t, q.Update(ctx, op))

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Pending())
	failed := q.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "permission denied", failed[0].LastError)
}

func TestQueueService_UpdateUnknownOperation(t *testing.T) {
	q, _ := newTestQueue(t)

	err := q.Update(context.Background(), testOp("ghost"))

	require.Error(t, err)
}
