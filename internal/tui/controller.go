// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/models"
)

// Controller is the part of service.SyncController the interface drives.
// Reads are synchronous and cheap; writes are run from tea.Cmds.
type Controller interface {
	Start(ctx context.Context) error
	Events() <-chan service.Event

	State() service.SyncState
	Configured() bool
	Identity() *models.Identity
	Settings() models.Settings
	LastAddedID() string
	PendingMigration() int
	Tags() []string
	ColorFor(tag string) string
	Item(id string) (models.Item, bool)
	View(criteria models.FilterCriteria, loc *time.Location) []models.Group

	AddItem(ctx context.Context, draft models.Item) (models.Item, error)
	ToggleStatus(ctx context.Context, id string) error
	SetDescription(ctx context.Context, id, description string) error
	DeleteItem(ctx context.Context, id string) error
	AttachImage(ctx context.Context, id string, data []byte) error
	DetachImage(ctx context.Context, id string, ref models.ImageRef) error

	AddCategory(ctx context.Context, name string) error
	SetTagColor(ctx context.Context, tag, color string) error
	SetTagSortOrder(ctx context.Context, order models.TagSortOrder) error
	MoveTag(ctx context.Context, tag string, delta int) error
	RenameTag(ctx context.Context, from, to string) error
	DeleteTag(ctx context.Context, tag string) error

	SignIn(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	Register(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	SignOut(ctx context.Context) error
	ResolveMigration(ctx context.Context, accept bool) error
}

var _ Controller = (*service.SyncController)(nil)
