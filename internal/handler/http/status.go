// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fit-keeper/internal/app"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	status, err := h.services.Sync.Status(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg("error assembling engine status")
		http.Error(w, app.MsgStatusFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// queueResponse lists the active and permanently failed operations.
type queueResponse struct {
	Pending []models.OperationRecord `json:"pending"`
	Failed  []models.OperationRecord `json:"failed,omitempty"`
	Length  int                      `json:"length"`
}

func (h *Handler) getQueue(w http.ResponseWriter, r *http.Request) {
	pending := h.services.Queue.Pending()

	response := queueResponse{
		Pending: pending,
		Failed:  h.services.Queue.Failed(),
		Length:  len(pending),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
