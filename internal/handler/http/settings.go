// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.services.SettingsService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Handler.getSettings", err)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

// mergeSettings writes only the fields present in the body and answers with
// the merged document.
func (h *Handler) mergeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var patch models.SettingsPatch
	if !h.decodeBody(w, r, &patch) {
		return
	}

	settings, err := h.services.SettingsService.Merge(r.Context(), userID, patch)
	if err != nil {
		writeError(w, r, "Handler.mergeSettings", err)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}
