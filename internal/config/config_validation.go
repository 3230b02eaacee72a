// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate rejects values no source may legally produce. Missing values are
// accepted here; role-specific requirements are checked by validateServer
// and [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}
	if cfg.Storage.SettingsCacheSize < 0 {
		return fmt.Errorf("%w: negative settings cache size", ErrInvalidStorageConfigs)
	}
	if cfg.Workers.MigrationConcurrency < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.BlobDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.HeartbeatInterval <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.SettingsCacheSize <= 0 {
		return ErrInvalidStorageConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	// An empty address is legal: the client runs in guest mode only.
	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ReconnectInterval <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Capture.Address == "" || (cfg.Capture.Address != CaptureDisabled && cfg.Capture.RateLimit <= 0) {
		return ErrInvalidCaptureConfigs
	}

	if cfg.Workers.MigrationConcurrency <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.LogFile == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
