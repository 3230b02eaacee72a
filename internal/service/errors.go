// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/moya-list/internal/app"
)

// Server-side errors.
var (
	ErrInvalidDataProvided = errors.New(app.MsgInvalidDataProvided)

	// ErrWrongPassword covers both an unknown login and a password mismatch,
	// so a caller cannot discover which logins exist.
	ErrWrongPassword = errors.New(app.MsgInvalidLoginPassword)

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New(app.MsgTokenIsExpiredOrInvalid)

	ErrEmptyItemText = errors.New(app.MsgEmptyItemText)
	ErrTooManyImages = errors.New(app.MsgTooManyImages)

	ErrImageTooLarge        = errors.New(app.MsgImageTooLarge)
	ErrUnsupportedImageType = errors.New(app.MsgUnsupportedImageType)
)

// Client-side errors. The adapter's transport errors are mapped onto these
// before they reach the controller.
var (
	ErrUnauthorized        = errors.New(app.MsgTokenIsExpiredOrInvalid)
	ErrInvalidCredentials  = errors.New(app.MsgInvalidLoginPassword)
	ErrLoginAlreadyExists  = errors.New(app.MsgLoginAlreadyExists)
	ErrItemNotFound        = errors.New(app.MsgItemNotFound)
	ErrItemConflict        = errors.New(app.MsgItemAlreadyExist)
	ErrServerUnavailable   = errors.New(app.MsgServerUnavailable)
	ErrInternalServerError = errors.New(app.MsgInternalServerError)
	ErrRejected            = errors.New(app.MsgInvalidDataProvided)

	// ErrSessionPending rejects a write that arrives while sign-in is still
	// resolving. Captures are queued instead.
	ErrSessionPending = errors.New(app.MsgSessionPending)

	// ErrSettingsNotLoaded rejects a settings write made after sign-in but
	// before the account's settings arrived, which would otherwise be built
	// from defaults.
	ErrSettingsNotLoaded = errors.New("settings are still loading")

	// ErrRemoteNotConfigured is returned by sign-in calls when the client has
	// no server address.
	ErrRemoteNotConfigured = errors.New("remote store is not configured")

	// ErrNotAuthenticated is returned by remote operations made without a
	// session.
	ErrNotAuthenticated = errors.New("not signed in")

	// ErrNoMigrationPending is returned by ResolveMigration when no prompt is
	// open.
	ErrNoMigrationPending = errors.New("no migration is pending")
)

// MigrationError reports the guest items that could not be imported. Local
// data is left untouched when it is returned.
type MigrationError struct {
	Failed []string
	Err    error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("%s: %d item(s) failed (%s): %v",
		app.MsgMigrationFailed, len(e.Failed), strings.Join(e.Failed, ", "), e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
