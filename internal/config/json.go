// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		LogFile       string   `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BlobDir string `json:"blob_dir"`
		} `json:"files,omitempty"`

		SettingsCacheSize int `json:"settings_cache_size"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		GRPCAddress       string   `json:"grpc_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		AllowedOrigins    []string `json:"allowed_origins"`
		AuthRateLimit     float64  `json:"auth_rate_limit"`
		AuthRateBurst     int      `json:"auth_rate_burst"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		ReconnectInterval Duration `json:"reconnect_interval"`
		BreakerTimeout    Duration `json:"breaker_timeout"`
	} `json:"adapter,omitempty"`

	Capture struct {
		Address        string   `json:"address"`
		AllowedOrigins []string `json:"allowed_origins"`
		RateLimit      float64  `json:"rate_limit"`
		RateBurst      int      `json:"rate_burst"`
	} `json:"capture,omitempty"`

	Workers struct {
		MigrationConcurrency int `json:"migration_concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			LogFile:       jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB:                DB{DSN: jsonCfg.Storage.DB.DSN},
			Files:             Files{BlobDir: jsonCfg.Storage.Files.BlobDir},
			SettingsCacheSize: jsonCfg.Storage.SettingsCacheSize,
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			GRPCAddress:       jsonCfg.Server.GRPCAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			HeartbeatInterval: time.Duration(jsonCfg.Server.HeartbeatInterval),
			AllowedOrigins:    jsonCfg.Server.AllowedOrigins,
			AuthRateLimit:     jsonCfg.Server.AuthRateLimit,
			AuthRateBurst:     jsonCfg.Server.AuthRateBurst,
		},
		Adapter: Adapter{
			HTTPAddress:       jsonCfg.Adapter.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Adapter.RequestTimeout),
			ReconnectInterval: time.Duration(jsonCfg.Adapter.ReconnectInterval),
			BreakerTimeout:    time.Duration(jsonCfg.Adapter.BreakerTimeout),
		},
		Capture: Capture{
			Address:        jsonCfg.Capture.Address,
			AllowedOrigins: jsonCfg.Capture.AllowedOrigins,
			RateLimit:      jsonCfg.Capture.RateLimit,
			RateBurst:      jsonCfg.Capture.RateBurst,
		},
		Workers: Workers{
			MigrationConcurrency: jsonCfg.Workers.MigrationConcurrency,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" and from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
