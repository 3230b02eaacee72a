// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering a login that is
	// already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a user lookup matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrItemNotFound is returned when an item id does not exist for the
	// user. Items of other users are reported the same way.
	ErrItemNotFound = errors.New("item was not found")

	// ErrItemAlreadyExists is returned when an item id is reused.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrEmptyUpdate is returned for an update that changes nothing.
	ErrEmptyUpdate = errors.New("update changes nothing")

	// ErrSettingsNotFound is returned when the user never wrote settings.
	ErrSettingsNotFound = errors.New("settings were not found")

	// ErrBlobNotFound is returned when a blob reference is unknown or not
	// owned by the requesting user.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidBlobRef is returned for a reference that is not a sha256
	// hex digest.
	ErrInvalidBlobRef = errors.New("invalid blob reference")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query or statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
