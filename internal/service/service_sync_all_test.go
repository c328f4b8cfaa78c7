// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/mock"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// stubExecutor scripts per-operation outcomes by operation id.
type stubExecutor struct {
	results map[string]error
	calls   []string
}

func (s *stubExecutor) Execute(_ context.Context, op models.OperationRecord) error {
	s.calls = append(s.calls, op.ID)
	return s.results[op.ID]
}

type stubDelta struct {
	items    map[models.DataCategory]models.SyncedItems
	errs     map[models.DataCategory]error
	lastSync map[models.DataCategory]time.Time
}

func (s *stubDelta) Refresh(_ context.Context, _ string, category models.DataCategory) (models.SyncedItems, error) {
	return s.items[category], s.errs[category]
}

func (s *stubDelta) LastSync(context.Context, string) (map[models.DataCategory]time.Time, error) {
	return s.lastSync, nil
}

type stubMonitor struct{ online bool }

func (s *stubMonitor) Start(context.Context) {}
func (s *stubMonitor) Stop() {}
func (s *stubMonitor) Online() bool { return s.online }
func (s *stubMonitor) Subscribe(func(bool)) {}

type stubSession struct{ session models.Session }

func (s *stubSession) SignIn(context.Context, string) (models.Session, error) {
	return s.session, nil
}
func (s *stubSession) SignOut(context.Context) error { return nil }
func (s *stubSession) Restore(context.Context) (models.Session, error) {
	return s.session, nil
}
func (s *stubSession) Active() (models.Session, bool) { return s.session, s.session.Active() }
func (s *stubSession) OnSignIn(func(ctx context.Context, session models.Session)) {}

type stubConflicts struct{ pending []models.ConflictRecord }

func (s *stubConflicts) Resolve(_ context.Context, _, remote models.Record) (models.Record, error) {
	return remote, nil
}
func (s *stubConflicts) PendingConflicts(context.Context, string) ([]models.ConflictRecord, error) {
	return s.pending, nil
}
func (s *stubConflicts) Acknowledge(context.Context, string, models.ConflictWinner) error {
	return nil
}

type syncFixture struct {
	sync     *syncService
	queue    QueueService
	executor *stubExecutor
	delta    *stubDelta
	monitor  *stubMonitor
	session  *stubSession
}

func newTestSync(t *testing.T) *syncFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	state := mock.NewMockKVStateRepository(ctrl)
	state.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	queue := NewQueueService(state, logger.Nop())

	f := &syncFixture{
		queue:    queue,
		executor: &stubExecutor{results: map[string]error{}},
		delta:    &stubDelta{items: map[models.DataCategory]models.SyncedItems{}, errs: map[models.DataCategory]error{}},
		monitor:  &stubMonitor{online: true},
		session:  &stubSession{},
	}

	cfg := config.Sync{MaxRetries: 3}
	f.sync = NewSyncService(queue, f.executor, f.delta, &stubConflicts{}, f.monitor,
		f.session, cfg, logger.Nop()).(*syncService)
	return f
}

func (f *syncFixture) enqueue(t *testing.T, op models.OperationRecord) {
	t.Helper()
	require.NoError(t, f.queue.Enqueue(context.Background(), op))
}

func TestDrainQueue_SuccessRemovesOperations(t *testing.T) {
	f := newTestSync(t)
	f.enqueue(t, testOp("op-1"))
	f.enqueue(t, testOp("op-2"))

	result, err := f.sync.DrainQueue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.SyncedItems.Uploaded)
	assert.True(t, result.Ok())
	assert.Equal(t, 0, f.queue.Len())
	assert.Equal(t, []string{"op-1", "op-2"}, f.executor.calls, "operations replay in arrival order")
}

func TestDrainQueue_MixedCategoriesAllUpload(t *testing.T) {
	f := newTestSync(t)

	categories := []models.DataCategory{
		models.CategoryProfile, models.CategoryWorkouts, models.CategoryNutrition,
	}
	for i, category := range categories {
		op := testOp(fmt.Sprintf("op-%d", i+1))
		op.Category = category
		f.enqueue(t, op)
	}

	result, err := f.sync.DrainQueue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.SyncedItems.Uploaded)
	assert.Equal(t, 0, f.queue.Len())
	assert.False(t, result.LastSyncTime.IsZero())
}

func TestDrainQueue_RetryableFailureRequeues(t *testing.T) {
	f := newTestSync(t)
	f.enqueue(t, testOp("op-1"))
	f.executor.results["op-1"] = models.NewSyncError(models.KindNetwork, "upsert",
		models.CategoryWorkouts, errors.New("connection refused"))

	result, err := f.sync.DrainQueue(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.SyncedItems.Uploaded)
	assert.True(t, result.Ok(), "a retryable failure is not a permanent error")

	pending := f.queue.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)
	assert.Contains(t, pending[0].LastError, "connection refused")
}

func TestDrainQueue_OneAttemptPerOperationPerPass(t *testing.T) {
	f := newTestSync(t)
	f.enqueue(t, testOp("op-1"))
	f.executor.results["op-1"] = models.NewSyncError(models.KindNetwork, "upsert",
		models.CategoryWorkouts, errors.New("connection refused"))

	_, err := f.sync.DrainQueue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"op-1"}, f.executor.calls,
		"a re-queued operation waits for the next drain")
}

func TestDrainQueue_ExhaustedRetriesFailPermanently(t *testing.T) {
	f := newTestSync(t)
	op := testOp("op-1")
	op.RetryCount = 2 // one attempt left under MaxRetries=3
	f.enqueue(t, op)
	f.executor.results["op-1"] = models.NewSyncError(models.KindNetwork, "upsert",
		models.CategoryWorkouts, errors.New("connection refused"))

	result, err := f.sync.DrainQueue(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "connection refused")
	assert.Equal(t, 0, f.queue.Len(), "failed operations leave the active queue")

	failed := f.queue.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, models.StatusFailed, failed[0].Status)
	assert.Equal(t, 3, failed[0].RetryCount)
}

func TestDrainQueue_NonRetryableFailsImmediately(t *testing.T) {
	f := newTestSync(t)
	f.enqueue(t, testOp("op-1"))
	f.executor.results["op-1"] = models.NewSyncError(models.KindValidation, "upsert",
		models.CategoryWorkouts, errors.New("bad payload"))

	result, err := f.sync.DrainQueue(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	require.Len(t, f.queue.Failed(), 1)
	assert.Equal(t, 1, f.queue.Failed()[0].RetryCount, "no retry budget spent beyond the first attempt")
}

func TestDrainQueue_CancellationRestoresPending(t *testing.T) {
	f := newTestSync(t)
	f.enqueue(t, testOp("op-1"))
	f.enqueue(t, testOp("op-2"))
	f.executor.results["op-1"] = context.Canceled

	_, err := f.sync.DrainQueue(context.Background())

	require.ErrorIs(t, err, context.Canceled)
	pending := f.queue.Pending()
	require.Len(t, pending, 2, "interrupted and untouched operations both stay pending")
	assert.Zero(t, pending[0].RetryCount, "cancellation never burns retry budget")
}

func TestSyncAll_CombinesDrainAndDelta(t *testing.T) {
	f := newTestSync(t)
	f.enqueue(t, testOp("op-1"))
	f.delta.items[models.CategoryWorkouts] = models.SyncedItems{Downloaded: 3, Conflicts: 1}
	f.delta.items[models.CategoryMeasurements] = models.SyncedItems{Downloaded: 2}

	result, err := f.sync.SyncAll(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 1, result.SyncedItems.Uploaded)
	assert.Equal(t, 5, result.SyncedItems.Downloaded)
	assert.Equal(t, 1, result.SyncedItems.Conflicts)
	assert.False(t, result.LastSyncTime.IsZero())
}

func TestSyncAll_CategoryFailureDoesNotAbortOthers(t *testing.T) {
	f := newTestSync(t)
	f.delta.errs[models.CategoryWorkouts] = fmt.Errorf("boom")
	f.delta.items[models.CategoryNutrition] = models.SyncedItems{Downloaded: 1}

	result, err := f.sync.SyncAll(context.Background(), "user-1")

	require.NoError(t, err, "per-category failures collect as warnings")
	assert.Equal(t, 1, result.SyncedItems.Downloaded)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "refresh workouts")
}

func TestStatus_AssemblesEngineSnapshot(t *testing.T) {
	f := newTestSync(t)
	f.monitor.online = true
	f.session.session = models.Session{UserID: "user-1", Token: "token"}
	f.enqueue(t, testOp("op-1"))

	watermark := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	f.delta.lastSync = map[models.DataCategory]time.Time{models.CategoryWorkouts: watermark}

	status, err := f.sync.Status(context.Background())

	require.NoError(t, err)
	assert.True(t, status.Online)
	assert.Equal(t, 1, status.QueueLength)
	assert.Equal(t, "user-1", status.ActiveUserID)
	assert.True(t, status.LastSync[models.CategoryWorkouts].Equal(watermark))
}

func TestStatus_WithoutSessionStopsAtQueueState(t *testing.T) {
	f := newTestSync(t)
	f.monitor.online = false

	status, err := f.sync.Status(context.Background())

	require.NoError(t, err)
	assert.False(t, status.Online)
	assert.Empty(t, status.ActiveUserID)
	assert.Empty(t, status.LastSync)
}
