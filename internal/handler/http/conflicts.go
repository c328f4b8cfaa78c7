// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fit-keeper/internal/app"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

type conflictsResponse struct {
	Conflicts []models.ConflictRecord `json:"conflicts"`
	Length    int                     `json:"length"`
}

type acknowledgeRequest struct {
	Winner models.ConflictWinner `json:"winner"`
}

func (h *Handler) getConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := h.services.Session.Active()
	if !ok {
		log.Error().Str("func", "*Handler.getConflicts").Msg("no active session")
		http.Error(w, app.MsgNoActiveSession, statusFromError(service.ErrNoActiveSession))
		return
	}

	conflicts, err := h.services.Conflicts.PendingConflicts(ctx, session.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getConflicts").Msg("error listing pending conflicts")
		http.Error(w, app.MsgConflictsFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, conflictsResponse{Conflicts: conflicts, Length: len(conflicts)}, http.StatusOK)
}

func (h *Handler) acknowledgeConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	conflictID := chi.URLParam(r, "conflictID")

	var request acknowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.acknowledgeConflict").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if request.Winner != models.WinnerLocal && request.Winner != models.WinnerRemote {
		log.Error().Str("func", "*Handler.acknowledgeConflict").
			Str("winner", string(request.Winner)).Msg("unknown conflict winner")
		http.Error(w, app.MsgUnknownConflictWinner, http.StatusBadRequest)
		return
	}

	if err := h.services.Conflicts.Acknowledge(ctx, conflictID, request.Winner); err != nil {
		log.Err(err).Str("func", "*Handler.acknowledgeConflict").Msg("error acknowledging conflict")
		http.Error(w, app.MsgAcknowledgeFailed, statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
