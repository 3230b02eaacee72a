// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's transport to the moya-list server.
//
// [ServerAdapter] hides the REST API and the Server-Sent Events streams
// behind plain method calls. Every non-streaming call goes through a circuit
// breaker, so an unreachable server fails fast with [ErrServiceUnavailable]
// instead of stalling the UI on each request. HTTP status codes are mapped to
// the sentinels in errors.go; the server's message text follows the
// sentinel.
package adapter

import (
	"context"

	"github.com/MKhiriev/moya-list/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// StreamEvent is one dispatched Server-Sent Events frame.
type StreamEvent struct {
	// Name is the "event:" field; "message" when the frame has none.
	Name string
	// Data is the joined "data:" lines.
	Data []byte
}

// ServerAdapter is the client's view of the server API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// An empty token signs the adapter out.
	SetToken(token string)
	Token() string

	// Register creates an account and stores the returned token.
	Register(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	// Login checks the credentials and stores the returned token.
	Login(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	// Me returns the account of the stored token.
	Me(ctx context.Context) (models.Identity, error)

	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, id string, update models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (models.Settings, error)
	MergeSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error)

	UploadBlob(ctx context.Context, data []byte) (models.BlobInfo, error)

	// Stream opens the snapshot stream of topic and calls onEvent for every
	// frame until ctx is canceled or the connection drops. It always returns
	// a non-nil error.
	Stream(ctx context.Context, topic models.ChangeTopic, onEvent func(StreamEvent)) error

	Version(ctx context.Context) (models.AppBuildInfo, error)
}
