// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults used for every field no other source sets.
const (
	DefaultHTTPAddress          = "localhost:8080"
	DefaultGRPCAddress          = "localhost:9090"
	DefaultCaptureAddress       = "localhost:5174"
	DefaultRequestTimeout       = 15 * time.Second
	DefaultReconnectInterval    = 3 * time.Second
	DefaultBreakerTimeout       = 30 * time.Second
	DefaultHeartbeatInterval    = 30 * time.Second
	DefaultTokenDuration        = 24 * time.Hour
	DefaultTokenIssuer          = "moya-list"
	DefaultSettingsCacheSize    = 1024
	DefaultMigrationConcurrency = 8
	DefaultClientDSN            = "moya.db"
	DefaultBlobDir              = "blobs"
	DefaultLogFile              = "moya-client.log"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogFile:       DefaultLogFile,
		},
		Storage: Storage{
			Files:             Files{BlobDir: DefaultBlobDir},
			SettingsCacheSize: DefaultSettingsCacheSize,
		},
		Server: Server{
			HTTPAddress:       DefaultHTTPAddress,
			GRPCAddress:       DefaultGRPCAddress,
			RequestTimeout:    DefaultRequestTimeout,
			HeartbeatInterval: DefaultHeartbeatInterval,
			AllowedOrigins:    []string{"*"},
			AuthRateLimit:     5,
			AuthRateBurst:     10,
		},
		Adapter: Adapter{
			RequestTimeout:    DefaultRequestTimeout,
			ReconnectInterval: DefaultReconnectInterval,
			BreakerTimeout:    DefaultBreakerTimeout,
		},
		Capture: Capture{
			Address:        DefaultCaptureAddress,
			AllowedOrigins: []string{"*"},
			RateLimit:      10,
			RateBurst:      20,
		},
		Workers: Workers{
			MigrationConcurrency: DefaultMigrationConcurrency,
		},
	}
}
