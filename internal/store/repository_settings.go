// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
	"github.com/lib/pq"
)

// settingsRepository is the PostgreSQL-backed implementation of
// [SettingsRepository]. One row per user; NULL columns were never written.
type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository constructs a [SettingsRepository] backed by db.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *settingsRepository) GetSettings(ctx context.Context, userID int64) (models.Settings, error) {
	log := logger.FromContext(ctx)

	var settings models.Settings
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		settings, scanErr = scanSettings(s.QueryRowContext(ctx, getSettings, userID))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, ErrSettingsNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.GetSettings").
			Int64("user_id", userID).
			Msg("failed to read settings")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return settings, nil
}

func (s *settingsRepository) MergeSettings(ctx context.Context, userID int64, patch models.SettingsPatch) (models.Settings, error) {
	log := logger.FromContext(ctx)

	args, err := mergeSettingsArgs(userID, patch)
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.MergeSettings").
			Int64("user_id", userID).
			Msg("failed to encode settings patch")
		return models.Settings{}, err
	}

	var settings models.Settings
	err = s.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		settings, scanErr = scanSettings(s.QueryRowContext(ctx, mergeSettings, args...))
		return scanErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.MergeSettings").
			Int64("user_id", userID).
			Msg("failed to merge settings")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return settings, nil
}

// mergeSettingsArgs maps absent patch fields to NULL.
func mergeSettingsArgs(userID int64, patch models.SettingsPatch) ([]any, error) {
	args := []any{userID, nil, nil, nil, nil}

	if patch.Categories != nil {
		args[1] = pq.StringArray(nonNil(*patch.Categories))
	}
	if patch.TagColors != nil {
		colors := *patch.TagColors
		if colors == nil {
			colors = map[string]string{}
		}
		raw, err := json.Marshal(colors)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		args[2] = string(raw)
	}
	if patch.CustomTagOrder != nil {
		args[3] = pq.StringArray(nonNil(*patch.CustomTagOrder))
	}
	if patch.TagSortOrder != nil {
		args[4] = string(*patch.TagSortOrder)
	}

	return args, nil
}

// scanSettings reads a settings row, filling never-written columns with
// the defaults of a fresh user.
func scanSettings(row rowScanner) (models.Settings, error) {
	var (
		categories pq.StringArray
		tagColors  []byte
		order      pq.StringArray
		sortOrder  sql.NullString
	)

	if err := row.Scan(&categories, &tagColors, &order, &sortOrder); err != nil {
		return models.Settings{}, err
	}

	settings := models.DefaultSettings()
	if categories != nil {
		settings.Categories = []string(categories)
	}
	if order != nil {
		settings.CustomTagOrder = []string(order)
	}
	if len(tagColors) > 0 {
		if err := json.Unmarshal(tagColors, &settings.TagColors); err != nil {
			return models.Settings{}, fmt.Errorf("%w: tag colors: %w", ErrScanningRow, err)
		}
	}
	if sortOrder.Valid && models.TagSortOrder(sortOrder.String).Valid() {
		settings.TagSortOrder = models.TagSortOrder(sortOrder.String)
	}
	if settings.TagColors == nil {
		settings.TagColors = map[string]string{}
	}

	return settings, nil
}

// nonNil keeps an explicitly empty list from being written as NULL.
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
