// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/moya-list/internal/app"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/validators"
)

// errorResponse is the status and plain-text body sent for an error.
type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	validators.ErrValidation:           {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrEmptyItemText:           {http.StatusBadRequest, app.MsgEmptyItemText},
	service.ErrTooManyImages:           {http.StatusBadRequest, app.MsgTooManyImages},
	service.ErrUnsupportedImageType:    {http.StatusBadRequest, app.MsgUnsupportedImageType},
	service.ErrImageTooLarge:           {http.StatusRequestEntityTooLarge, app.MsgImageTooLarge},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},

	store.ErrLoginAlreadyExists: {http.StatusConflict, app.MsgLoginAlreadyExists},
	store.ErrNoUserWasFound:     {http.StatusNotFound, app.MsgInvalidLoginPassword},
	store.ErrItemNotFound:       {http.StatusNotFound, app.MsgItemNotFound},
	store.ErrItemAlreadyExists:  {http.StatusConflict, app.MsgItemAlreadyExist},
	store.ErrEmptyUpdate:        {http.StatusBadRequest, app.MsgNothingToUpdate},
	store.ErrBlobNotFound:       {http.StatusNotFound, app.MsgImageNotFound},
	store.ErrInvalidBlobRef:     {http.StatusNotFound, app.MsgImageNotFound},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError logs err and answers with its mapped status. Internal errors
// are logged at error level, client errors at info.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	resp := responseFromError(err)
	log := logger.FromRequest(r)

	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Info().Err(err).Str("func", funcName).Int("status", resp.status).Msg("request rejected")
	}

	http.Error(w, resp.message, resp.status)
}
