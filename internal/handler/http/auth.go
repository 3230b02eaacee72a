// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/moya-list/internal/app"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

// register creates the account and signs it in: the token is returned in the
// Authorization header and the identity in the body.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	credentials, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, credentials)
	if err != nil {
		writeError(w, r, "Handler.register", err)
		return
	}

	h.issueToken(w, r, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	credentials, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, "Handler.login", err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("user successfully logged in")
	h.issueToken(w, r, user)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Handler.me", err)
		return
	}

	utils.WriteJSON(w, user.Identity(), http.StatusOK)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (models.Credentials, bool) {
	var credentials models.Credentials
	if err := utils.DecodeJSON(r, &credentials, maxJSONBodySize); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.Credentials{}, false
	}
	if err := h.validator.Validate(r.Context(), credentials); err != nil {
		writeError(w, r, "Handler.decodeCredentials", err)
		return models.Credentials{}, false
	}
	return credentials, true
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, "Handler.issueToken", err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, user.Identity(), http.StatusOK)
}

// requireUserID reads the id stored by the auth middleware.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}
