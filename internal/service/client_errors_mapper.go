// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/moya-list/internal/adapter"
	"github.com/MKhiriev/moya-list/internal/app"
)

// mapAdapterError translates the adapter's transport error into a client
// service error. The server message is kept in the chain when the sentinel
// alone would lose detail.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidLoginPassword {
			return ErrInvalidCredentials
		}
		return ErrUnauthorized

	case errors.Is(err, adapter.ErrNotFound):
		return ErrItemNotFound

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgLoginAlreadyExists {
			return ErrLoginAlreadyExists
		}
		return ErrItemConflict

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrPayloadTooLarge),
		errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %s", ErrRejected, msg)

	case errors.Is(err, adapter.ErrTooManyRequests):
		return fmt.Errorf("%w: %s", ErrRejected, app.MsgTooManyRequests)

	case errors.Is(err, adapter.ErrServiceUnavailable),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrStreamClosed):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)

	case errors.Is(err, adapter.ErrInternalServerError):
		return ErrInternalServerError
	}

	return err
}

// extractBody returns the server message of an error of the form
// "<sentinel>: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
