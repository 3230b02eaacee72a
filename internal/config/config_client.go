// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// LogFile is the path of the client log.
	LogFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base address. Empty means no backend.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// ReconnectInterval is the pause before a dropped stream is reopened.
	ReconnectInterval time.Duration
	// BreakerTimeout is the open-state duration of the circuit breaker.
	BreakerTimeout time.Duration
}

// Configured reports whether a backend address is set.
func (a ClientAdapter) Configured() bool {
	return a.HTTPAddress != ""
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// BlobDir holds guest-mode image blobs.
	BlobDir string
}

// ClientCapture holds the local capture listener settings.
type ClientCapture struct {
	Address        string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// Enabled reports whether the capture listener should run.
func (c ClientCapture) Enabled() bool {
	return c.Address != CaptureDisabled
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// MigrationConcurrency caps the parallel writes of a guest import.
	MigrationConcurrency int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Capture ClientCapture
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		withClientDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// withClientDefaults fills the client-only default SQLite path. It is kept
// apart from defaultConfig so the server never falls back to a file DSN.
func (b *configBuilder) withClientDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: DefaultClientDSN}},
	})
	return b
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			LogFile: cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:       cfg.Adapter.HTTPAddress,
			RequestTimeout:    cfg.Adapter.RequestTimeout,
			ReconnectInterval: cfg.Adapter.ReconnectInterval,
			BreakerTimeout:    cfg.Adapter.BreakerTimeout,
		},
		Storage: ClientStorage{
			DB:      ClientDB{DSN: cfg.Storage.DB.DSN},
			BlobDir: cfg.Storage.Files.BlobDir,
		},
		Capture: ClientCapture{
			Address:        cfg.Capture.Address,
			AllowedOrigins: cfg.Capture.AllowedOrigins,
			RateLimit:      cfg.Capture.RateLimit,
			RateBurst:      cfg.Capture.RateBurst,
		},
		Workers: ClientWorkers{
			MigrationConcurrency: cfg.Workers.MigrationConcurrency,
		},
	}
}
