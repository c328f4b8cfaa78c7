// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fit-keeper/internal/app"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func (h *Handler) startMigration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.MigrationStartRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.startMigration").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if request.UserID == "" && request.ResumeID == "" {
		log.Error().Str("func", "*Handler.startMigration").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var (
		mc  models.MigrationContext
		err error
	)
	if request.ResumeID != "" {
		mc, err = h.services.Migration.Resume(ctx, request.ResumeID)
	} else {
		mc, err = h.services.Migration.Migrate(ctx, request.UserID)
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.startMigration").
			Str("migration_id", mc.MigrationID).Msg("migration did not complete")
		// the attempt may still be resumable; report its identity
		utils.WriteJSON(w, models.MigrationStartResponse{
			MigrationID: mc.MigrationID,
			Status:      mc.Status,
		}, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MigrationStartResponse{
		MigrationID: mc.MigrationID,
		Status:      mc.Status,
	}, http.StatusOK)
}

func (h *Handler) getMigrationProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	migrationID := chi.URLParam(r, "migrationID")

	progress, err := h.services.Migration.Progress(ctx, migrationID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getMigrationProgress").
			Str("migration_id", migrationID).Msg("error loading migration progress")
		http.Error(w, app.MsgMigrationProgressFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, progress, http.StatusOK)
}

func (h *Handler) rollbackMigration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	migrationID := chi.URLParam(r, "migrationID")

	mc, err := h.services.Migration.Rollback(ctx, migrationID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.rollbackMigration").
			Str("migration_id", migrationID).Msg("error rolling back migration")
		http.Error(w, app.MsgRollbackFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MigrationStartResponse{
		MigrationID: mc.MigrationID,
		Status:      mc.Status,
	}, http.StatusOK)
}
