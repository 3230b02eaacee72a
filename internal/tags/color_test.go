// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor_Deterministic(t *testing.T) {
	first := ColorFor("react", map[string]string{})
	for range 10 {
		assert.Equal(t, first, ColorFor("react", nil))
	}
	assert.Contains(t, Palette, first)
}

func TestColorFor_OverrideWins(t *testing.T) {
	assert.Equal(t, "#ABCDEF", ColorFor("react", map[string]string{"react": "#ABCDEF"}))
}

func TestColorFor_OverrideForOtherTagIgnored(t *testing.T) {
	assert.Equal(t, Palette[PaletteIndex("react")], ColorFor("react", map[string]string{"vue": "#000000"}))
}

func TestHash_KnownValues(t *testing.T) {
	// "a" = 97, "ab" = 97*31 + 98 = 3105
	assert.Equal(t, int32(0), Hash(""))
	assert.Equal(t, int32(97), Hash("a"))
	assert.Equal(t, int32(3105), Hash("ab"))
	assert.Equal(t, 97%7, PaletteIndex("a"))
	assert.Equal(t, 3105%7, PaletteIndex("ab"))
}

func TestHash_Wraparound(t *testing.T) {
	// long inputs overflow int32; the index must still be in range
	long := "abcdefghijklmnopqrstuvwxyz알고리즘자료구조"
	idx := PaletteIndex(long)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, len(Palette))
	assert.Equal(t, idx, PaletteIndex(long))
}
