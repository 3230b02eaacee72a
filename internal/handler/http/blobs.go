// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

// uploadBlob stores the raw request body as an image and answers 201 with
// its BlobInfo.
func (h *Handler) uploadBlob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, models.MaxImageSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, "Handler.uploadBlob", service.ErrImageTooLarge)
			return
		}
		writeError(w, r, "Handler.uploadBlob", service.ErrInvalidDataProvided)
		return
	}

	info, err := h.services.BlobService.Save(r.Context(), userID, data)
	if err != nil {
		writeError(w, r, "Handler.uploadBlob", err)
		return
	}

	utils.WriteJSON(w, info, http.StatusCreated)
}

// downloadBlob serves an image the user uploaded. Blobs are immutable, so
// the response may be cached forever.
func (h *Handler) downloadBlob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	info, body, err := h.services.BlobService.Open(r.Context(), userID, models.ImageRef(chi.URLParam(r, "ref")))
	if err != nil {
		writeError(w, r, "Handler.downloadBlob", err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "Handler.downloadBlob").Msg("blob transfer interrupted")
	}
}
