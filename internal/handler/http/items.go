// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/moya-list/internal/app"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.services.ItemService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Handler.listItems", err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// createItem answers 201 with the stored item. The client may propose a
// UUID; otherwise the server assigns one.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var item models.Item
	if !h.decodeBody(w, r, &item) {
		return
	}

	created, err := h.services.ItemService.Create(r.Context(), userID, item)
	if err != nil {
		writeError(w, r, "Handler.createItem", err)
		return
	}
	if h.metrics != nil {
		h.metrics.ItemsCreated.Inc()
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var update models.ItemUpdate
	if !h.decodeBody(w, r, &update) {
		return
	}

	updated, err := h.services.ItemService.Update(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, "Handler.updateItem", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.ItemService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "Handler.deleteItem", err)
		return
	}
	if h.metrics != nil {
		h.metrics.ItemsDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes and validates a JSON body into dst, answering 400 on
// failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSON(r, dst, maxJSONBodySize); err != nil {
		logger.FromRequest(r).Info().Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return false
	}
	if err := h.validator.Validate(r.Context(), dst); err != nil {
		writeError(w, r, "Handler.decodeBody", err)
		return false
	}
	return true
}
