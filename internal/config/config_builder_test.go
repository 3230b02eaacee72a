// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	return f.Name()
}

func testBuilder() *configBuilder {
	b := newConfigBuilder()
	b.args = nil
	return b
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := testBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := testBuilder()
	b.err = assert.AnError

	cfg, err := b.build()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that an earlier source is never
// overwritten by a later one.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "env"}},
		&StructuredConfig{App: App{TokenIssuer: "flag", TokenSignKey: "flag-key"}},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "env", cfg.App.TokenIssuer)
	assert.Equal(t, "flag-key", cfg.App.TokenSignKey)
}

func TestBuild_RejectsNegativeDurations(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RequestTimeout: -time.Second}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsOnlyZeroFields(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{Capture: Capture{Address: "localhost:6000"}})

	cfg, err := b.withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, "localhost:6000", cfg.Capture.Address)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultReconnectInterval, cfg.Adapter.ReconnectInterval)
	assert.Equal(t, DefaultHeartbeatInterval, cfg.Server.HeartbeatInterval)
	assert.Equal(t, DefaultSettingsCacheSize, cfg.Storage.SettingsCacheSize)
	assert.Empty(t, cfg.Adapter.HTTPAddress)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_TOKEN_ISSUER": "env-issuer",
		"ADAPTER_ADDRESS":  "http://localhost:8080",
	})

	b := testBuilder()
	assert.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
	assert.Equal(t, "http://localhost:8080", b.configs[0].Adapter.HTTPAddress)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"WORKERS_MIGRATION_CONCURRENCY": "many"})

	b := testBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_UsesBuilderArgs(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-s", "http://remote.test"}

	b.withFlags()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://remote.test", b.configs[0].Adapter.HTTPAddress)
}

func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	b := testBuilder()
	b.args = []string{"-unknown"}

	b.withFlags()

	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	assert.Same(t, b, b.withJSON())
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := testBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.TokenIssuer = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := testBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/ignored.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.TokenIssuer)
}

// ── validation ────────────────────────────────────────────────────────────────

func TestValidateServer(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := defaultConfig()
		cfg.Storage.DB.DSN = "postgres://localhost/moya"
		cfg.App.TokenSignKey = "secret"
		return cfg
	}

	require.NoError(t, valid().validateServer())

	noDSN := valid()
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.validateServer(), ErrInvalidStorageConfigs)

	noKey := valid()
	noKey.App.TokenSignKey = ""
	assert.ErrorIs(t, noKey.validateServer(), ErrInvalidAppConfigs)

	noAddr := valid()
	noAddr.Server.HTTPAddress = ""
	assert.ErrorIs(t, noAddr.validateServer(), ErrInvalidServerConfigs)
}

func TestClientConfig_Validate(t *testing.T) {
	base := defaultConfig()
	base.Storage.DB.DSN = DefaultClientDSN

	cfg := newClientConfig(base)
	require.NoError(t, cfg.validate())
	assert.False(t, cfg.Adapter.Configured())
	assert.True(t, cfg.Capture.Enabled())

	memory := newClientConfig(base)
	memory.Storage.DB.DSN = "file::memory:"
	assert.ErrorIs(t, memory.validate(), ErrInvalidStorageConfigs)

	noTimeout := newClientConfig(base)
	noTimeout.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidAdapterConfigs)

	disabled := newClientConfig(base)
	disabled.Capture.Address = CaptureDisabled
	disabled.Capture.RateLimit = 0
	require.NoError(t, disabled.validate())
	assert.False(t, disabled.Capture.Enabled())

	noWorkers := newClientConfig(base)
	noWorkers.Workers.MigrationConcurrency = 0
	assert.ErrorIs(t, noWorkers.validate(), ErrInvalidWorkerConfigs)
}
