// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/metrics"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/models"
)

// settingsService reads through an LRU cache keyed by user id. The cache is
// refreshed with the row returned by every merge, so it never serves a value
// older than the last write made through this process.
type settingsService struct {
	settings store.SettingsRepository
	notifier Notifier
	cache    *lru.Cache[int64, models.Settings]
	metrics  *metrics.Collector
	logger   *logger.Logger
}

// NewSettingsService constructs the server SettingsService. collector may be
// nil.
func NewSettingsService(settings store.SettingsRepository, notifier Notifier, cacheSize int, collector *metrics.Collector, logger *logger.Logger) (SettingsService, error) {
	cache, err := lru.New[int64, models.Settings](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("error creating settings cache: %w", err)
	}

	return &settingsService{
		settings: settings,
		notifier: notifier,
		cache:    cache,
		metrics:  collector,
		logger:   logger,
	}, nil
}

// Get returns the user's settings; a user who never wrote any gets the
// defaults.
func (s *settingsService) Get(ctx context.Context, userID int64) (models.Settings, error) {
	if cached, ok := s.cache.Get(userID); ok {
		s.observe(true)
		return cached.Clone(), nil
	}
	s.observe(false)

	settings, err := s.settings.GetSettings(ctx, userID)
	if errors.Is(err, store.ErrSettingsNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "settingsService.Get").Int64("user_id", userID).Msg("reading settings failed")
		return models.Settings{}, fmt.Errorf("reading settings failed: %w", err)
	}

	s.cache.Add(userID, settings.Clone())
	return settings, nil
}

// Merge applies the non-nil fields of patch and leaves the rest untouched.
func (s *settingsService) Merge(ctx context.Context, userID int64, patch models.SettingsPatch) (models.Settings, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, userID)
	}

	settings, err := s.settings.MergeSettings(ctx, userID, patch)
	if err != nil {
		s.cache.Remove(userID)
		logger.FromContext(ctx).Err(err).Str("func", "settingsService.Merge").Int64("user_id", userID).Msg("merging settings failed")
		return models.Settings{}, fmt.Errorf("merging settings failed: %w", err)
	}

	s.cache.Add(userID, settings.Clone())
	s.notifier.Notify(userID, models.TopicSettings)

	return settings, nil
}

func (s *settingsService) observe(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.SettingsCacheHits.Inc()
	} else {
		s.metrics.SettingsCacheMisses.Inc()
	}
}
