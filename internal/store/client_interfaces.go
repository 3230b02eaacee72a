// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/moya-list/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KeyValueRepository is a flat string key-value store.
type KeyValueRepository interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// LocalPersistence is the typed view of the client key-value store used in
// guest mode. Malformed stored JSON reads as empty instead of failing.
type LocalPersistence interface {
	LoadItems(ctx context.Context) ([]models.Item, error)
	// SaveItems overwrites the whole stored item list.
	SaveItems(ctx context.Context, items []models.Item) error
	ClearItems(ctx context.Context) error
	// HasItems reports whether a non-empty item list is stored.
	HasItems(ctx context.Context) (bool, error)

	// LoadSettings returns the stored settings, with defaults for missing
	// keys.
	LoadSettings(ctx context.Context) (models.Settings, error)
	// SaveSettings overwrites the keys of the non-nil patch fields.
	SaveSettings(ctx context.Context, patch models.SettingsPatch) error

	MigrationDone(ctx context.Context) (bool, error)
	SetMigrationDone(ctx context.Context, done bool) error

	// LoadSession returns ok=false when no session is stored.
	LoadSession(ctx context.Context) (models.Session, bool, error)
	SaveSession(ctx context.Context, session models.Session) error
	ClearSession(ctx context.Context) error
}
