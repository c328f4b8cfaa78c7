// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/models"
)

// migrationStep couples the persisted step attributes with its handler
// and an optional rollback handler undoing the step's remote writes.
type migrationStep struct {
	models.MigrationStep
	run      func(ctx context.Context, run *migrationRun) error
	rollback func(ctx context.Context, run *migrationRun) error
}

// migrationRun is the in-memory state of one executing attempt: the
// persisted checkpoint plus the local snapshot being migrated.
type migrationRun struct {
	mc       *models.MigrationContext
	snapshot models.LocalSnapshot
}

// pipeline returns the ordered step list. Weights sum to 1.0; the first
// six steps never run out of order because completion is recorded per
// step in the checkpoint.
func (m *migrationService) pipeline() []migrationStep {
	return []migrationStep{
		{
			MigrationStep: models.MigrationStep{
				Name:        "validate",
				Description: "Validating local data",
				Weight:      0.10,
				Critical:    true,
			},
			run: m.stepValidate,
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "transform",
				Description: "Preparing records for upload",
				Weight:      0.15,
				Critical:    true,
			},
			run: m.stepTransform,
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "upload-profile",
				Description: "Uploading profile and preferences",
				Weight:      0.15,
				Retryable:   true,
				Critical:    true,
			},
			run:      m.uploadStep(models.CategoryProfile, models.CategoryPreferences),
			rollback: m.rollbackStep(models.CategoryProfile, models.CategoryPreferences),
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "upload-fitness",
				Description: "Uploading measurements and workouts",
				Weight:      0.15,
				Retryable:   true,
				Critical:    true,
			},
			run:      m.uploadStep(models.CategoryMeasurements, models.CategoryWorkouts),
			rollback: m.rollbackStep(models.CategoryMeasurements, models.CategoryWorkouts),
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "upload-nutrition",
				Description: "Uploading nutrition logs",
				Weight:      0.15,
				Retryable:   true,
				Critical:    true,
			},
			run:      m.uploadStep(models.CategoryNutrition),
			rollback: m.rollbackStep(models.CategoryNutrition),
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "upload-progress",
				Description: "Uploading progress history",
				Weight:      0.10,
				Retryable:   true,
			},
			run:      m.uploadStep(models.CategoryProgress),
			rollback: m.rollbackStep(models.CategoryProgress),
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "verify",
				Description: "Verifying uploaded data",
				Weight:      0.10,
				Retryable:   true,
			},
			run: m.stepVerify,
		},
		{
			MigrationStep: models.MigrationStep{
				Name:        "cleanup-local",
				Description: "Cleaning up local data",
				Weight:      0.10,
			},
			run: m.stepCleanupLocal,
		},
	}
}

func (m *migrationService) stepValidate(ctx context.Context, run *migrationRun) error {
	if !m.cfg.PreValidate {
		return nil
	}
	if err := m.validator.Validate(ctx, run.snapshot); err != nil {
		return models.NewSyncError(models.KindValidation, "migrate", "", err)
	}
	return nil
}

// stepTransform decodes every payload into its typed form, fills
// documented defaults and re-serializes. A payload failing the round
// trip aborts before any remote write.
func (m *migrationService) stepTransform(ctx context.Context, run *migrationRun) error {
	for category, records := range run.snapshot.Records {
		for i := range records {
			payload, err := preparePayload(category, records[i].Payload)
			if err != nil {
				return models.NewSyncError(models.KindValidation, "migrate", category,
					fmt.Errorf("record %s: %w", records[i].Key(), err))
			}
			records[i].Payload = payload
		}
	}
	return nil
}

// uploadStep returns a handler uploading every snapshot record of the
// given categories, strictly sequentially. Re-running a partially
// completed step re-upserts rows already written, which is harmless.
func (m *migrationService) uploadStep(categories ...models.DataCategory) func(context.Context, *migrationRun) error {
	return func(ctx context.Context, run *migrationRun) error {
		for _, category := range categories {
			for _, record := range run.snapshot.Records[category] {
				if record.Deleted {
					continue
				}
				if err := m.remote.Upsert(ctx, record); err != nil {
					return err
				}
				if run.mc.Uploaded == nil {
					run.mc.Uploaded = make(map[models.DataCategory]int)
				}
				run.mc.Uploaded[category]++
			}
		}
		return nil
	}
}

// rollbackStep returns a handler deleting the records the matching
// upload step wrote, scoped to the migrating user.
func (m *migrationService) rollbackStep(categories ...models.DataCategory) func(context.Context, *migrationRun) error {
	return func(ctx context.Context, run *migrationRun) error {
		for _, category := range categories {
			for _, record := range run.snapshot.Records[category] {
				if record.Deleted {
					continue
				}
				if err := m.remote.Delete(ctx, run.mc.UserID, record.Key()); err != nil {
					return fmt.Errorf("undo upload of %s: %w", record.Key(), err)
				}
			}
			delete(run.mc.Uploaded, category)
		}
		return nil
	}
}

// stepVerify fetches each uploaded category back and checks the remote
// row count covers what this attempt wrote. Rows from other devices may
// push the remote count higher; fewer rows than uploaded is a failure.
func (m *migrationService) stepVerify(ctx context.Context, run *migrationRun) error {
	for category, uploaded := range run.mc.Uploaded {
		if uploaded == 0 {
			continue
		}

		rows, err := m.remote.Fetch(ctx, run.mc.UserID, category)
		if err != nil {
			return err
		}

		live := 0
		for _, row := range rows {
			if !row.Deleted {
				live++
			}
		}
		if live < uploaded {
			return fmt.Errorf("verify %s: remote has %d records, uploaded %d", category, live, uploaded)
		}
	}
	return nil
}

func (m *migrationService) stepCleanupLocal(ctx context.Context, run *migrationRun) error {
	if !m.cfg.ClearLocalOnSuccess {
		return nil
	}
	if err := m.records.PurgeUserRecords(ctx, run.mc.UserID); err != nil {
		return fmt.Errorf("clear migrated local data: %w", err)
	}
	return nil
}
