// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

// Keys of the client key-value store.
const (
	KeyItems          = "moya_items"
	KeyCategories     = "moya_categories"
	KeyTagColors      = "moya_tag_colors"
	KeyCustomTagOrder = "moya_custom_tag_order"
	KeyTagSortOrder   = "moya_tag_sort_order"
	KeyMigrationDone  = "moya_migration_done"
	KeySession        = "moya_session"
)

type localPersistence struct {
	kv     KeyValueRepository
	logger *logger.Logger
}

// NewLocalPersistence wraps kv with typed accessors.
func NewLocalPersistence(kv KeyValueRepository, logger *logger.Logger) LocalPersistence {
	return &localPersistence{kv: kv, logger: logger}
}

// LoadItems reads the stored list through the legacy-aware StoredItem shape,
// so records written with a single `category` come back with `categories`.
func (l *localPersistence) LoadItems(ctx context.Context) ([]models.Item, error) {
	var stored []models.StoredItem
	found, err := l.getJSON(ctx, KeyItems, &stored)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(stored))
	if !found {
		return items, nil
	}

	for _, s := range stored {
		if s.ID == "" || s.Text == "" {
			l.logger.Warn().Str("func", "localPersistence.LoadItems").Str("id", s.ID).Msg("skipping incomplete stored item")
			continue
		}
		items = append(items, s.Item())
	}

	return items, nil
}

func (l *localPersistence) SaveItems(ctx context.Context, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	return l.setJSON(ctx, KeyItems, items)
}

func (l *localPersistence) ClearItems(ctx context.Context) error {
	return l.kv.Delete(ctx, KeyItems)
}

func (l *localPersistence) HasItems(ctx context.Context) (bool, error) {
	items, err := l.LoadItems(ctx)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

func (l *localPersistence) LoadSettings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()

	var categories []string
	found, err := l.getJSON(ctx, KeyCategories, &categories)
	if err != nil {
		return models.Settings{}, err
	}
	if found && categories != nil {
		settings.Categories = categories
	}

	var colors map[string]string
	if found, err = l.getJSON(ctx, KeyTagColors, &colors); err != nil {
		return models.Settings{}, err
	}
	if found && colors != nil {
		settings.TagColors = colors
	}

	var order []string
	if found, err = l.getJSON(ctx, KeyCustomTagOrder, &order); err != nil {
		return models.Settings{}, err
	}
	if found && order != nil {
		settings.CustomTagOrder = order
	}

	raw, found, err := l.kv.Get(ctx, KeyTagSortOrder)
	if err != nil {
		return models.Settings{}, err
	}
	if found {
		if sortOrder := models.TagSortOrder(raw); sortOrder.Valid() {
			settings.TagSortOrder = sortOrder
		} else {
			l.logger.Warn().Str("func", "localPersistence.LoadSettings").Str("value", raw).Msg("ignoring unknown tag sort order")
		}
	}

	return settings, nil
}

func (l *localPersistence) SaveSettings(ctx context.Context, patch models.SettingsPatch) error {
	if patch.Categories != nil {
		if err := l.setJSON(ctx, KeyCategories, nonNil(*patch.Categories)); err != nil {
			return err
		}
	}
	if patch.TagColors != nil {
		colors := *patch.TagColors
		if colors == nil {
			colors = map[string]string{}
		}
		if err := l.setJSON(ctx, KeyTagColors, colors); err != nil {
			return err
		}
	}
	if patch.CustomTagOrder != nil {
		if err := l.setJSON(ctx, KeyCustomTagOrder, nonNil(*patch.CustomTagOrder)); err != nil {
			return err
		}
	}
	if patch.TagSortOrder != nil {
		if err := l.kv.Set(ctx, KeyTagSortOrder, string(*patch.TagSortOrder)); err != nil {
			return err
		}
	}

	return nil
}

func (l *localPersistence) MigrationDone(ctx context.Context) (bool, error) {
	raw, found, err := l.kv.Get(ctx, KeyMigrationDone)
	if err != nil || !found {
		return false, err
	}

	done, parseErr := strconv.ParseBool(raw)
	if parseErr != nil {
		l.logger.Warn().Err(parseErr).Str("func", "localPersistence.MigrationDone").Msg("malformed migration flag")
		return false, nil
	}

	return done, nil
}

// SetMigrationDone stores the flag; clearing it deletes the key.
func (l *localPersistence) SetMigrationDone(ctx context.Context, done bool) error {
	if !done {
		return l.kv.Delete(ctx, KeyMigrationDone)
	}
	return l.kv.Set(ctx, KeyMigrationDone, strconv.FormatBool(true))
}

func (l *localPersistence) LoadSession(ctx context.Context) (models.Session, bool, error) {
	var session models.Session
	found, err := l.getJSON(ctx, KeySession, &session)
	if err != nil || !found || session.Token == "" {
		return models.Session{}, false, err
	}

	return session, true, nil
}

func (l *localPersistence) SaveSession(ctx context.Context, session models.Session) error {
	return l.setJSON(ctx, KeySession, session)
}

func (l *localPersistence) ClearSession(ctx context.Context) error {
	return l.kv.Delete(ctx, KeySession)
}

// getJSON decodes key into dst. A missing key or malformed JSON reports
// found=false with a nil error; only storage failures are returned.
func (l *localPersistence) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := l.kv.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		l.logger.Warn().Err(err).Str("func", "localPersistence.getJSON").Str("key", key).Msg("malformed stored value, treating as empty")
		return false, nil
	}

	return true, nil
}

func (l *localPersistence) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", key, err)
	}
	return l.kv.Set(ctx, key, string(raw))
}
