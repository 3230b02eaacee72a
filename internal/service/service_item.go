// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/tags"
	"github.com/MKhiriev/moya-list/models"
)

type itemService struct {
	items    store.ItemRepository
	notifier Notifier
	ids      IDGenerator
	logger   *logger.Logger
}

// NewItemService constructs the server ItemService.
func NewItemService(items store.ItemRepository, notifier Notifier, ids IDGenerator, logger *logger.Logger) ItemService {
	return &itemService{
		items:    items,
		notifier: notifier,
		ids:      ids,
		logger:   logger,
	}
}

// Create stores a new item for userID. The id is kept when the client sent a
// UUID (so an interrupted import can be repeated) and generated otherwise.
// createdAt is always assigned by the database. Categories default to the
// hashtags of the text.
func (s *itemService) Create(ctx context.Context, userID int64, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(item.Text) == "" {
		return models.Item{}, ErrEmptyItemText
	}
	if len(item.Images) > models.MaxImages {
		return models.Item{}, ErrTooManyImages
	}

	if item.ID == "" {
		item.ID = s.ids.Generate()
	} else if _, err := uuid.Parse(item.ID); err != nil {
		log.Info().Str("func", "itemService.Create").Str("item_id", item.ID).Msg("client id is not a uuid")
		return models.Item{}, ErrInvalidDataProvided
	}

	if len(item.Categories) == 0 {
		item.Categories = tags.Extract(item.Text)
	}
	item = models.NormalizeItem(item)

	created, err := s.items.CreateItem(ctx, userID, item)
	if err != nil {
		log.Err(err).Str("func", "itemService.Create").Int64("user_id", userID).Msg("item creation failed")
		return models.Item{}, fmt.Errorf("item creation failed: %w", err)
	}

	s.notifier.Notify(userID, models.TopicItems)

	return created, nil
}

// List returns the user's items, newest first.
func (s *itemService) List(ctx context.Context, userID int64) ([]models.Item, error) {
	items, err := s.items.ListItems(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "itemService.List").Int64("user_id", userID).Msg("listing items failed")
		return nil, fmt.Errorf("listing items failed: %w", err)
	}

	return items, nil
}

func (s *itemService) Update(ctx context.Context, userID int64, id string, update models.ItemUpdate) (models.Item, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return models.Item{}, store.ErrEmptyUpdate
	}
	if update.Text != nil && strings.TrimSpace(*update.Text) == "" {
		return models.Item{}, ErrEmptyItemText
	}
	if update.Images != nil && len(*update.Images) > models.MaxImages {
		return models.Item{}, ErrTooManyImages
	}

	updated, err := s.items.UpdateItem(ctx, userID, id, update.Normalize())
	if err != nil {
		log.Err(err).Str("func", "itemService.Update").Int64("user_id", userID).Str("item_id", id).Msg("item update failed")
		return models.Item{}, fmt.Errorf("item update failed: %w", err)
	}

	s.notifier.Notify(userID, models.TopicItems)

	return updated, nil
}

// Delete removes the item permanently.
func (s *itemService) Delete(ctx context.Context, userID int64, id string) error {
	if err := s.items.DeleteItem(ctx, userID, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "itemService.Delete").Int64("user_id", userID).Str("item_id", id).Msg("item deletion failed")
		return fmt.Errorf("item deletion failed: %w", err)
	}

	s.notifier.Notify(userID, models.TopicItems)

	return nil
}
