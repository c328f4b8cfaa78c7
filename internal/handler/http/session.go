// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-fit-keeper/internal/app"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/utils"
)

type signInRequest struct {
	Token string `json:"token"`
}

type signInResponse struct {
	UserID string `json:"user_id"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request signInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.signIn").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	session, err := h.services.Session.SignIn(ctx, request.Token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.signIn").Msg("error establishing session")
		http.Error(w, app.MsgSessionFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, signInResponse{UserID: session.UserID}, http.StatusOK)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.Session.SignOut(ctx); err != nil {
		log.Err(err).Str("func", "*Handler.signOut").Msg("error clearing session")
		http.Error(w, app.MsgSignOutFailed, statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
