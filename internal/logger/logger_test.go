// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

// ── newLogger ────────────────────────────────────────────────────────────────

func TestNewLogger_Fields(t *testing.T) {
	for _, role := range []string{"moya-list-server", "moya-list-client"} {
		t.Run(role, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, role)

			l.Info().Str("item_id", "0192f").Msg("item created")

			entry := lastEntry(t, &buf)
			assert.Equal(t, role, entry["role"])
			assert.Equal(t, "0192f", entry["item_id"])
			assert.Contains(t, entry, "time")
			assert.Contains(t, entry["func"], "TestNewLogger_Fields")
		})
	}

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewLogger_NotNil(t *testing.T) {
	require.NotNil(t, NewLogger("moya-list-server"))
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Error().Str("func", "ItemService.Create").Msg("ignored") })
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

// ── Child loggers ────────────────────────────────────────────────────────────

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "moya-list-server")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("trace_id", "abc").Logger()

	child.Info().Msg("from child")
	entry := lastEntry(t, &buf)
	assert.Equal(t, "abc", entry["trace_id"])
	assert.Equal(t, "moya-list-server", entry["role"], "child inherits parent fields")

	parent.Info().Msg("from parent")
	assert.NotContains(t, lastEntry(t, &buf), "trace_id", "parent is not enriched by the child")
}

// ── Context helpers ──────────────────────────────────────────────────────────

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "moya-list-server")
	l.Logger = l.With().Str("trace_id", "t-1").Logger()

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("in handler")
	assert.Equal(t, "t-1", lastEntry(t, &buf)["trace_id"])

	assert.NotNil(t, FromContext(context.Background()), "a bare context still yields a logger")
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "moya-list-server")
	l.Logger = l.With().Str("trace_id", "t-2").Logger()

	r := httptest.NewRequest("GET", "/api/items", nil)
	r = r.WithContext(l.WithContext(r.Context()))

	FromRequest(r).Info().Msg("listing items")
	assert.Equal(t, "t-2", lastEntry(t, &buf)["trace_id"])
}

// ── NewClientLogger ──────────────────────────────────────────────────────────

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	l, closer, err := NewClientLogger("moya-list-client", path)
	require.NoError(t, err)

	l.Info().Str("state", "guest").Msg("controller started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "moya-list-client", entry["role"])
	assert.Equal(t, "guest", entry["state"])
}

// The TUI owns stdout, so an unusable path is an error rather than a
// fallback to the terminal.
func TestNewClientLogger_FailsOnDirectory(t *testing.T) {
	_, _, err := NewClientLogger("moya-list-client", t.TempDir())
	assert.Error(t, err)
}
