// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-fit-keeper/internal/adapter"
	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/store"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/internal/validators"
	"github.com/MKhiriev/go-fit-keeper/models"
)

const (
	migrationStateKeyFmt  = "fitkeeper:migration:%s"
	migrationBackupKeyFmt = "fitkeeper:migration_backup:%s"
)

type migrationService struct {
	records   store.LocalRecordRepository
	state     store.KVStateRepository
	remote    adapter.RemoteStore
	validator validators.Validator
	cfg       config.Migration
	ids       *utils.UUIDGenerator
	logger    *logger.Logger
	now       func() time.Time

	mu      sync.Mutex
	running bool
	subs    []func(models.MigrationProgress)
}

func NewMigrationService(records store.LocalRecordRepository, state store.KVStateRepository,
	remote adapter.RemoteStore, validator validators.Validator, cfg config.Migration,
	logger *logger.Logger) MigrationService {
	return &migrationService{
		records:   records,
		state:     state,
		remote:    remote,
		validator: validator,
		cfg:       cfg,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (m *migrationService) Migrate(ctx context.Context, userID string) (models.MigrationContext, error) {
	if !m.begin() {
		return models.MigrationContext{}, ErrMigrationAlreadyRunning
	}
	defer m.end()

	mc := models.MigrationContext{
		MigrationID: m.ids.Generate(),
		UserID:      userID,
		StartTime:   m.now(),
		Status:      models.MigrationPending,
	}

	snapshot, err := m.exportSnapshot(ctx, userID)
	if err != nil {
		return mc, err
	}
	if snapshot.Empty() {
		mc.Status = models.MigrationFailed
		mc.Errors = append(mc.Errors, ErrNoLocalData.Error())
		m.checkpoint(ctx, &mc)
		m.publish(progressOf(&mc, ""))
		return mc, ErrNoLocalData
	}

	if m.cfg.BackupEnabled {
		backupKey := fmt.Sprintf(migrationBackupKeyFmt, mc.MigrationID)
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return mc, fmt.Errorf("marshal backup snapshot: %w", err)
		}
		if err := m.state.Set(ctx, backupKey, raw); err != nil {
			return mc, fmt.Errorf("persist backup snapshot: %w", err)
		}
		mc.BackupKey = backupKey
	}

	run := &migrationRun{mc: &mc, snapshot: snapshot}
	return mc, m.runSteps(ctx, run)
}

func (m *migrationService) Resume(ctx context.Context, migrationID string) (models.MigrationContext, error) {
	if !m.begin() {
		return models.MigrationContext{}, ErrMigrationAlreadyRunning
	}
	defer m.end()

	mc, err := m.loadCheckpoint(ctx, migrationID)
	if err != nil {
		return models.MigrationContext{}, err
	}
	if mc.Status == models.MigrationCompleted || mc.Status == models.MigrationRolledBack {
		return mc, fmt.Errorf("%w: status %s", ErrMigrationNotResumable, mc.Status)
	}

	snapshot, err := m.reloadSnapshot(ctx, &mc)
	if err != nil {
		return mc, err
	}

	// A resumed failed attempt gets a fresh chance: the failed step
	// re-enters the pipeline with an empty error slate.
	mc.Errors = nil
	mc.FailedSteps = nil

	m.logger.Info().Str("func", "migrationService.Resume").
		Str("migration_id", migrationID).
		Strs("completed_steps", mc.CompletedSteps).
		Msg("resuming migration from checkpoint")

	run := &migrationRun{mc: &mc, snapshot: snapshot}
	return mc, m.runSteps(ctx, run)
}

func (m *migrationService) Rollback(ctx context.Context, migrationID string) (models.MigrationContext, error) {
	if !m.begin() {
		return models.MigrationContext{}, ErrMigrationAlreadyRunning
	}
	defer m.end()

	mc, err := m.loadCheckpoint(ctx, migrationID)
	if err != nil {
		return models.MigrationContext{}, err
	}

	snapshot, err := m.reloadSnapshot(ctx, &mc)
	if err != nil {
		return mc, err
	}
	run := &migrationRun{mc: &mc, snapshot: snapshot}

	// Rollback handlers replay in reverse completion order. Failures
	// become warnings: a partially undone rollback must still report
	// what it could not undo instead of aborting halfway.
	steps := m.pipeline()
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.rollback == nil || !mc.StepCompleted(step.Name) {
			continue
		}
		if err := step.rollback(ctx, run); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return mc, err
			}
			mc.Warnings = append(mc.Warnings, fmt.Sprintf("rollback %s: %v", step.Name, err))
		}
	}

	mc.Status = models.MigrationRolledBack
	m.checkpoint(ctx, &mc)
	m.publish(progressOf(&mc, ""))

	m.logger.Info().Str("func", "migrationService.Rollback").
		Str("migration_id", migrationID).
		Int("warnings", len(mc.Warnings)).
		Msg("migration rolled back")

	return mc, nil
}

func (m *migrationService) Progress(ctx context.Context, migrationID string) (models.MigrationProgress, error) {
	mc, err := m.loadCheckpoint(ctx, migrationID)
	if err != nil {
		return models.MigrationProgress{}, err
	}

	message := ""
	for _, step := range m.pipeline() {
		if step.Name == mc.CurrentStep {
			message = step.Description
		}
	}
	return progressOf(&mc, message), nil
}

func (m *migrationService) Subscribe(fn func(models.MigrationProgress)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// runSteps executes the pipeline from the first incomplete step. The
// checkpoint is persisted after every step transition so a crash at any
// point leaves a resumable attempt behind.
//
// A non-critical step that exhausts its retries is recorded in both
// FailedSteps and CompletedSteps: its weight counts toward progress and
// Resume skips past it instead of re-running work that already failed
// deterministically. The failure stays visible through FailedSteps and
// the Warnings list on the final checkpoint.
func (m *migrationService) runSteps(ctx context.Context, run *migrationRun) error {
	mc := run.mc
	mc.Status = models.MigrationRunning

	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	for _, step := range m.pipeline() {
		if mc.StepCompleted(step.Name) {
			continue
		}

		mc.CurrentStep = step.Name
		m.checkpoint(ctx, mc)
		m.publish(progressOf(mc, step.Description))

		err := m.runStep(ctx, step, run)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				m.checkpoint(ctx, mc)
				return err
			}

			mc.FailedSteps = append(mc.FailedSteps, step.Name)
			if step.Critical {
				mc.Errors = append(mc.Errors, fmt.Sprintf("%s: %v", step.Name, err))
				mc.Status = models.MigrationFailed
				m.checkpoint(ctx, mc)
				m.publish(progressOf(mc, step.Description))

				m.logger.Error().Err(err).Str("func", "migrationService.runSteps").
					Str("migration_id", mc.MigrationID).
					Str("step", step.Name).
					Msg("critical migration step failed")
				return fmt.Errorf("migration %s failed at %s: %w", mc.MigrationID, step.Name, err)
			}

			mc.Warnings = append(mc.Warnings, fmt.Sprintf("%s: %v", step.Name, err))
			m.logger.Warn().Err(err).Str("func", "migrationService.runSteps").
				Str("migration_id", mc.MigrationID).
				Str("step", step.Name).
				Msg("non-critical migration step failed")
		}

		mc.CompletedSteps = append(mc.CompletedSteps, step.Name)
		mc.CurrentStep = ""
		m.checkpoint(ctx, mc)
		m.publish(progressOf(mc, step.Description))
	}

	mc.Status = models.MigrationCompleted
	if mc.BackupKey != "" {
		if err := m.state.Delete(ctx, mc.BackupKey); err != nil {
			mc.Warnings = append(mc.Warnings, fmt.Sprintf("drop backup: %v", err))
		} else {
			mc.BackupKey = ""
		}
	}
	m.checkpoint(ctx, mc)
	m.publish(progressOf(mc, ""))

	m.logger.Info().Str("func", "migrationService.runSteps").
		Str("migration_id", mc.MigrationID).
		Int("warnings", len(mc.Warnings)).
		Msg("migration completed")

	return nil
}

// runStep executes one step under its retry policy. Only retryable
// steps failing with a retryable error kind are re-attempted.
func (m *migrationService) runStep(ctx context.Context, step migrationStep, run *migrationRun) error {
	backoff := retry.WithCappedDuration(m.cfg.MaxDelay, retry.NewExponential(m.cfg.BaseDelay))
	backoff = retry.WithMaxRetries(uint64(m.cfg.MaxRetries), backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := step.run(ctx, run)
		if err == nil {
			return nil
		}
		if step.Retryable && models.KindOf(err).Retryable() {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (m *migrationService) exportSnapshot(ctx context.Context, userID string) (models.LocalSnapshot, error) {
	records, err := m.records.GetAllRecords(ctx, userID)
	if err != nil {
		return models.LocalSnapshot{}, fmt.Errorf("export local snapshot: %w", err)
	}

	snapshot := models.LocalSnapshot{
		UserID:     userID,
		Records:    make(map[models.DataCategory][]models.Record, len(models.AllDataCategories)),
		ExportedAt: m.now(),
	}
	for _, record := range records {
		snapshot.Records[record.Category] = append(snapshot.Records[record.Category], record)
	}
	return snapshot, nil
}

// reloadSnapshot prefers the persisted backup; without one the snapshot
// is re-exported from the local store.
func (m *migrationService) reloadSnapshot(ctx context.Context, mc *models.MigrationContext) (models.LocalSnapshot, error) {
	if mc.BackupKey != "" {
		raw, err := m.state.Get(ctx, mc.BackupKey)
		if err == nil {
			var snapshot models.LocalSnapshot
			if err := json.Unmarshal(raw, &snapshot); err == nil {
				return snapshot, nil
			}
			m.logger.Warn().Str("func", "migrationService.reloadSnapshot").
				Str("migration_id", mc.MigrationID).
				Msg("backup snapshot corrupt, re-exporting")
		}
	}
	return m.exportSnapshot(ctx, mc.UserID)
}

func (m *migrationService) loadCheckpoint(ctx context.Context, migrationID string) (models.MigrationContext, error) {
	raw, err := m.state.Get(ctx, fmt.Sprintf(migrationStateKeyFmt, migrationID))
	if errors.Is(err, store.ErrStateNotFound) {
		return models.MigrationContext{}, ErrMigrationNotFound
	}
	if err != nil {
		return models.MigrationContext{}, fmt.Errorf("load migration checkpoint: %w", err)
	}

	var mc models.MigrationContext
	if err := json.Unmarshal(raw, &mc); err != nil {
		return models.MigrationContext{}, fmt.Errorf("decode migration checkpoint: %w", err)
	}
	return mc, nil
}

// checkpoint persists the attempt state. Persistence failures are
// logged, not returned: a failing checkpoint must not abort a step that
// already succeeded remotely.
func (m *migrationService) checkpoint(ctx context.Context, mc *models.MigrationContext) {
	raw, err := json.Marshal(mc)
	if err == nil {
		err = m.state.Set(ctx, fmt.Sprintf(migrationStateKeyFmt, mc.MigrationID), raw)
	}
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "migrationService.checkpoint").
			Str("migration_id", mc.MigrationID).
			Msg("migration checkpoint not persisted")
	}
}

func (m *migrationService) publish(progress models.MigrationProgress) {
	m.mu.Lock()
	subs := m.subs
	m.mu.Unlock()

	for _, fn := range subs {
		fn(progress)
	}
}

func (m *migrationService) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return false
	}
	m.running = true
	return true
}

func (m *migrationService) end() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// progressOf derives the weighted progress snapshot from the attempt
// state. Percentage counts completed step weights only, so successive
// snapshots of one attempt never decrease.
func progressOf(mc *models.MigrationContext, message string) models.MigrationProgress {
	var done float64
	for _, step := range migrationStepWeights {
		if mc.StepCompleted(step.name) {
			done += step.weight
		}
	}
	if mc.Status == models.MigrationCompleted {
		done = 1.0
	}

	return models.MigrationProgress{
		MigrationID: mc.MigrationID,
		Status:      mc.Status,
		CurrentStep: mc.CurrentStep,
		Percentage:  done * 100,
		Message:     message,
		Errors:      mc.Errors,
		Warnings:    mc.Warnings,
	}
}

// migrationStepWeights mirrors the pipeline's names and weights for
// progress computation without a service instance.
var migrationStepWeights = []struct {
	name   string
	weight float64
}{
	{"validate", 0.10},
	{"transform", 0.15},
	{"upload-profile", 0.15},
	{"upload-fitness", 0.15},
	{"upload-nutrition", 0.15},
	{"upload-progress", 0.10},
	{"verify", 0.10},
	{"cleanup-local", 0.10},
}
