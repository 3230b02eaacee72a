// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the server
// handlers (response bodies) and the client services (errors shown in the
// TUI). Keeping them in one place keeps the wording identical on both ends.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the login/password pair does
	// not match an account.
	MsgInvalidLoginPassword = "invalid login/password"

	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when the bearer token fails
	// verification.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a protected handler runs without
	// a user id in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	MsgRegistrationFailed = "registration failed"
	MsgLoginFailed        = "login failed"
	MsgLoginAlreadyExists = "login already exists"

	// MsgEmptyItemText is returned when an item would be created or updated
	// with empty text.
	MsgEmptyItemText = "item text is empty"

	// MsgNothingToUpdate is returned for a PATCH without any field set.
	MsgNothingToUpdate = "nothing to update"

	MsgItemNotFound     = "item not found"
	MsgItemAlreadyExist = "item already exists"

	// MsgTooManyImages is returned when an item would carry more than four
	// images.
	MsgTooManyImages = "too many images"

	MsgImageNotFound = "image not found"

	// MsgImageTooLarge is returned for an upload above the size limit.
	MsgImageTooLarge = "image is too large"

	// MsgUnsupportedImageType is returned for an upload that is not a
	// recognised image format.
	MsgUnsupportedImageType = "unsupported image type"

	// MsgTooManyRequests is returned by the rate limiter.
	MsgTooManyRequests = "too many requests"

	// MsgServerUnavailable is shown on the client when the server cannot be
	// reached or the circuit breaker is open.
	MsgServerUnavailable = "server is unavailable"

	// MsgSessionPending is shown when a write is attempted while sign-in is
	// still resolving.
	MsgSessionPending = "sign-in is still in progress"

	// MsgMigrationFailed is shown when importing guest items into the
	// account did not complete.
	MsgMigrationFailed = "importing local items failed"
)
