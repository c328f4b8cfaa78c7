// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// queueStateKey is the local state key holding the serialized queue.
const queueStateKey = "fitkeeper:op_queue"

type queueService struct {
	state  store.KVStateRepository
	logger *logger.Logger

	mu  sync.Mutex
	ops []models.OperationRecord

	kick chan struct{}
}

func NewQueueService(state store.KVStateRepository, logger *logger.Logger) QueueService {
	return &queueService{
		state:  state,
		logger: logger,
		kick:   make(chan struct{}, 1),
	}
}

func (q *queueService) Load(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	raw, err := q.state.Get(ctx, queueStateKey)
	if err != nil {
		if !errors.Is(err, store.ErrStateNotFound) {
			q.logger.Warn().Err(err).Str("func", "queueService.Load").
				Msg("queue state unreadable, starting empty")
		}
		q.ops = nil
		return nil
	}

	var ops []models.OperationRecord
	if err := json.Unmarshal(raw, &ops); err != nil {
		q.logger.Warn().Err(err).Str("func", "queueService.Load").
			Msg("queue state corrupt, starting empty")
		q.ops = nil
		return nil
	}

	// A crash mid-execution leaves operations stuck in processing;
	// they must become eligible again after restart.
	for i := range ops {
		if ops[i].Status == models.StatusProcessing {
			ops[i].Status = models.StatusPending
		}
	}

	q.ops = ops
	return nil
}

func (q *queueService) Enqueue(ctx context.Context, op models.OperationRecord) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if op.Status == "" {
		op.Status = models.StatusPending
	}

	q.ops = append(q.ops, op)
	if err := q.persist(ctx); err != nil {
		q.ops = q.ops[:len(q.ops)-1]
		return fmt.Errorf("enqueue operation %s: %w", op.ID, err)
	}

	q.logger.Debug().Str("func", "queueService.Enqueue").
		Str("operation_id", op.ID).
		Str("record", op.RecordKey().String()).
		Bool("critical", op.Critical).
		Msg("operation enqueued")

	if op.Critical {
		select {
		case q.kick <- struct{}{}:
		default:
		}
	}

	return nil
}

func (q *queueService) Update(ctx context.Context, op models.OperationRecord) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.ops {
		if q.ops[i].ID == op.ID {
			previous := q.ops[i]
			q.ops[i] = op
			if err := q.persist(ctx); err != nil {
				q.ops[i] = previous
				return fmt.Errorf("update operation %s: %w", op.ID, err)
			}
			return nil
		}
	}

	return fmt.Errorf("update operation %s: not in queue", op.ID)
}

func (q *queueService) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := q.ops[:0:0]
	for _, op := range q.ops {
		if _, gone := drop[op.ID]; !gone {
			kept = append(kept, op)
		}
	}

	previous := q.ops
	q.ops = kept
	if err := q.persist(ctx); err != nil {
		q.ops = previous
		return fmt.Errorf("remove operations: %w", err)
	}

	return nil
}

func (q *queueService) Pending() []models.OperationRecord {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := make([]models.OperationRecord, 0, len(q.ops))
	for _, op := range q.ops {
		if op.Status == models.StatusPending {
			pending = append(pending, op)
		}
	}
	return pending
}

func (q *queueService) Failed() []models.OperationRecord {
	q.mu.Lock()
	defer q.mu.Unlock()

	failed := make([]models.OperationRecord, 0)
	for _, op := range q.ops {
		if op.Status == models.StatusFailed {
			failed = append(failed, op)
		}
	}
	return failed
}

func (q *queueService) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, op := range q.ops {
		if op.Status == models.StatusPending {
			n++
		}
	}
	return n
}

func (q *queueService) Kick() <-chan struct{} {
	return q.kick
}

// persist writes the whole queue under queueStateKey. Callers hold q.mu.
func (q *queueService) persist(ctx context.Context) error {
	raw, err := json.Marshal(q.ops)
	if err != nil {
		return fmt.Errorf("marshal queue: %w", err)
	}
	if err := q.state.Set(ctx, queueStateKey, raw); err != nil {
		return fmt.Errorf("persist queue: %w", err)
	}
	return nil
}
