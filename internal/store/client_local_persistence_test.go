// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryKV is an in-process KeyValueRepository.
type memoryKV struct {
	values map[string]string
	err    error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memoryKV) Delete(_ context.Context, keys ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func newTestPersistence() (*localPersistence, *memoryKV) {
	kv := newMemoryKV()
	return &localPersistence{kv: kv, logger: logger.Nop()}, kv
}

// ── Items ────────────────────────────────────────────────────────────────────

func TestLocalPersistence_ItemsRoundTrip(t *testing.T) {
	p, _ := newTestPersistence()
	ctx := context.Background()

	items := []models.Item{
		{
			ID:          "b",
			Text:        "두 번째",
			Categories:  []string{"React", "CSS"},
			Description: "memo",
			Images:      []models.ImageRef{"r1"},
			Status:      models.StatusSolved,
			CreatedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:         "a",
			Text:       "first",
			Categories: []string{models.MiscTag},
			Status:     models.StatusUnsolved,
			CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, p.SaveItems(ctx, items))
	loaded, err := p.LoadItems(ctx)
	require.NoError(t, err)

	want, err := json.Marshal(items)
	require.NoError(t, err)
	got, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestLocalPersistence_LegacyCategory(t *testing.T) {
	p, kv := newTestPersistence()
	kv.values[KeyItems] = `[
		{"id":"1","text":"old","category":"HTML","status":"unsolved","createdAt":"2025-01-01T00:00:00Z"},
		{"id":"2","text":"older","status":"unsolved","createdAt":"2024-01-01T00:00:00Z"},
		{"id":"","text":"broken"}
	]`

	items, err := p.LoadItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"HTML"}, items[0].Categories)
	assert.Equal(t, []string{models.MiscTag}, items[1].Categories)
}

func TestLocalPersistence_MalformedItemsFailClosed(t *testing.T) {
	p, kv := newTestPersistence()
	kv.values[KeyItems] = `{not json`

	items, err := p.LoadItems(context.Background())

	require.NoError(t, err)
	assert.Empty(t, items)

	has, err := p.HasItems(context.Background())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLocalPersistence_SaveNilItems(t *testing.T) {
	p, kv := newTestPersistence()

	require.NoError(t, p.SaveItems(context.Background(), nil))
	assert.Equal(t, "[]", kv.values[KeyItems])

	require.NoError(t, p.ClearItems(context.Background()))
	_, ok := kv.values[KeyItems]
	assert.False(t, ok)
}

func TestLocalPersistence_StorageError(t *testing.T) {
	p, kv := newTestPersistence()
	kv.err = errors.New("disk full")

	_, err := p.LoadItems(context.Background())
	assert.Error(t, err)
}

// ── Settings ─────────────────────────────────────────────────────────────────

func TestLocalPersistence_DefaultSettings(t *testing.T) {
	p, _ := newTestPersistence()

	settings, err := p.LoadSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestLocalPersistence_SaveSettingsWritesOnlyPatchedKeys(t *testing.T) {
	p, kv := newTestPersistence()
	ctx := context.Background()

	kv.values[KeyCategories] = `["keep"]`
	order := models.SortManual
	tagOrder := []string{"B", "A"}

	require.NoError(t, p.SaveSettings(ctx, models.SettingsPatch{
		CustomTagOrder: &tagOrder,
		TagSortOrder:   &order,
	}))

	assert.Equal(t, `["keep"]`, kv.values[KeyCategories])
	assert.Equal(t, "manual", kv.values[KeyTagSortOrder])
	_, colorsWritten := kv.values[KeyTagColors]
	assert.False(t, colorsWritten)

	settings, err := p.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, settings.Categories)
	assert.Equal(t, []string{"B", "A"}, settings.CustomTagOrder)
	assert.Equal(t, models.SortManual, settings.TagSortOrder)
}

func TestLocalPersistence_EmptyCategoriesStayEmpty(t *testing.T) {
	p, kv := newTestPersistence()
	var none []string

	require.NoError(t, p.SaveSettings(context.Background(), models.SettingsPatch{Categories: &none}))
	assert.Equal(t, "[]", kv.values[KeyCategories])

	settings, err := p.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.Categories)
}

func TestLocalPersistence_UnknownSortOrder(t *testing.T) {
	p, kv := newTestPersistence()
	kv.values[KeyTagSortOrder] = "shuffle"
	kv.values[KeyTagColors] = `oops`

	settings, err := p.LoadSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SortByUsage, settings.TagSortOrder)
	assert.Equal(t, map[string]string{}, settings.TagColors)
}

// ── Migration flag & session ─────────────────────────────────────────────────

func TestLocalPersistence_MigrationFlag(t *testing.T) {
	p, kv := newTestPersistence()
	ctx := context.Background()

	done, err := p.MigrationDone(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, p.SetMigrationDone(ctx, true))
	assert.Equal(t, "true", kv.values[KeyMigrationDone])

	done, err = p.MigrationDone(ctx)
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, p.SetMigrationDone(ctx, false))
	_, ok := kv.values[KeyMigrationDone]
	assert.False(t, ok)
}

func TestLocalPersistence_Session(t *testing.T) {
	p, _ := newTestPersistence()
	ctx := context.Background()

	_, ok, err := p.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	session := models.Session{Token: "jwt", Identity: models.Identity{ID: "7", DisplayName: "ann"}}
	require.NoError(t, p.SaveSession(ctx, session))

	loaded, ok, err := p.LoadSession(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session, loaded)

	require.NoError(t, p.ClearSession(ctx))
	_, ok, err = p.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
