// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/moya-list/models"
)

// Subscription is a live snapshot listener. After Unsubscribe returns no
// further callback is delivered.
type Subscription interface {
	Unsubscribe()
}

// RemoteStore is the signed-in user's item collection and settings document
// on the server.
type RemoteStore interface {
	// CreateItem writes a new item. The server assigns createdAt and, when
	// item.ID is empty, the id.
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, id string, update models.ItemUpdate) error
	DeleteItem(ctx context.Context, id string) error

	// MergeSettings writes only the non-nil fields of patch.
	MergeSettings(ctx context.Context, patch models.SettingsPatch) error

	UploadImage(ctx context.Context, data []byte) (models.ImageRef, error)

	// SubscribeItems delivers the full item list, newest first, on every
	// change. Stream failures go to onError and the stream is reopened;
	// nothing is delivered in between.
	SubscribeItems(onSnapshot func([]models.Item), onError func(error)) Subscription
	// SubscribeSettings works like SubscribeItems for the settings document.
	SubscribeSettings(onSnapshot func(models.Settings), onError func(error)) Subscription
}

// AuthGateway signs the user in and out and reports identity changes.
type AuthGateway interface {
	SignIn(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	Register(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	SignOut(ctx context.Context) error

	// OnIdentityChange registers fn for every identity change; nil means
	// signed out. The returned func removes the listener.
	OnIdentityChange(fn func(identity *models.Identity)) (cancel func())

	// Restore resolves the stored session and reports the outcome to the
	// listeners exactly once, nil when there is no usable session.
	Restore(ctx context.Context) error

	// Current returns the signed-in identity or nil.
	Current() *models.Identity
}
