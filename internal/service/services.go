// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/metrics"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

// Services is the server service layer.
type Services struct {
	AuthService     AuthService
	ItemService     ItemService
	SettingsService SettingsService
	BlobService     BlobService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, notifier Notifier, collector *metrics.Collector, buildInfo models.AppBuildInfo, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	settingsService, err := NewSettingsService(storages.SettingsRepository, notifier, cfg.Storage.SettingsCacheSize, collector, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		ItemService:     NewItemService(storages.ItemRepository, notifier, utils.NewUUIDGenerator(), logger),
		SettingsService: settingsService,
		BlobService:     NewBlobService(storages.BlobStorage, storages.BlobRepository, logger),
		AppInfoService:  NewAppInfoService(buildInfo),
	}, nil
}
