// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fit-keeper/internal/app"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := h.services.Session.Active()
	if !ok {
		log.Error().Str("func", "*Handler.triggerSync").Msg("no active session")
		http.Error(w, app.MsgNoActiveSession, statusFromError(service.ErrNoActiveSession))
		return
	}

	result, err := h.services.Sync.SyncAll(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.triggerSync").Msg("error running full sync")
		http.Error(w, app.MsgSyncFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SyncTriggerResponse{Result: result}, http.StatusOK)
}
