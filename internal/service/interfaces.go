// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/MKhiriev/moya-list/models"
)

// AuthService owns accounts and access tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
}

// ItemService is the per-user item collection. Every successful write
// notifies the user's item subscribers.
type ItemService interface {
	Create(ctx context.Context, userID int64, item models.Item) (models.Item, error)
	List(ctx context.Context, userID int64) ([]models.Item, error)
	Update(ctx context.Context, userID int64, id string, update models.ItemUpdate) (models.Item, error)
	Delete(ctx context.Context, userID int64, id string) error
}

// SettingsService is the per-user settings document.
type SettingsService interface {
	Get(ctx context.Context, userID int64) (models.Settings, error)
	Merge(ctx context.Context, userID int64, patch models.SettingsPatch) (models.Settings, error)
}

// BlobService stores item images.
type BlobService interface {
	Save(ctx context.Context, userID int64, data []byte) (models.BlobInfo, error)
	Open(ctx context.Context, userID int64, ref models.ImageRef) (models.BlobInfo, io.ReadCloser, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}

// Notifier receives a signal after a user's data changed.
type Notifier interface {
	Notify(userID int64, topic models.ChangeTopic)
}

// IDGenerator produces new item ids.
type IDGenerator interface {
	Generate() string
}
