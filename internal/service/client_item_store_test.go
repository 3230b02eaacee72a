// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/moya-list/models"
)

func TestItemStore(t *testing.T) {
	s := NewItemStore()
	s.Replace([]models.Item{{ID: "b", Categories: []string{"CSS"}}})
	s.Prepend(models.Item{ID: "a", Categories: []string{"React"}})

	require.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.All()[0].ID)

	got, ok := s.Get("b")
	require.True(t, ok)
	got.Categories[0] = "changed"
	again, _ := s.Get("b")
	assert.Equal(t, "CSS", again.Categories[0])

	assert.True(t, s.Update(models.Item{ID: "b", Text: "updated"}))
	assert.False(t, s.Update(models.Item{ID: "zzz"}))
	again, _ = s.Get("b")
	assert.Equal(t, "updated", again.Text)

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get("a")
	assert.False(t, ok)
}
