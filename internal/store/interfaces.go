// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/MKhiriev/moya-list/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository stores accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// ItemRepository stores the per-user item collection.
type ItemRepository interface {
	// CreateItem inserts item and returns it with the database-assigned
	// CreatedAt.
	CreateItem(ctx context.Context, userID int64, item models.Item) (models.Item, error)

	// ListItems returns the user's items ordered by CreatedAt, newest first.
	ListItems(ctx context.Context, userID int64) ([]models.Item, error)

	GetItem(ctx context.Context, userID int64, id string) (models.Item, error)

	// UpdateItem applies the non-nil fields of update and returns the
	// stored result.
	UpdateItem(ctx context.Context, userID int64, id string, update models.ItemUpdate) (models.Item, error)

	DeleteItem(ctx context.Context, userID int64, id string) error
}

// SettingsRepository stores the per-user settings document.
type SettingsRepository interface {
	// GetSettings returns ErrSettingsNotFound when nothing was written yet.
	GetSettings(ctx context.Context, userID int64) (models.Settings, error)

	// MergeSettings writes the non-nil fields of patch, keeps the others
	// and returns the merged document.
	MergeSettings(ctx context.Context, userID int64, patch models.SettingsPatch) (models.Settings, error)
}

// BlobRepository records which user uploaded which blob.
type BlobRepository interface {
	AddBlob(ctx context.Context, userID int64, blob models.BlobInfo) error
	GetBlob(ctx context.Context, userID int64, ref models.ImageRef) (models.BlobInfo, error)
}

// BlobStorage keeps blob contents addressed by their sha256 digest.
type BlobStorage interface {
	// SaveBlob stores data and returns its reference. Saving the same
	// content twice yields the same reference.
	SaveBlob(ctx context.Context, data []byte) (models.ImageRef, error)
	OpenBlob(ctx context.Context, ref models.ImageRef) (io.ReadCloser, error)
}
