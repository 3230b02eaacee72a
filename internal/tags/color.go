// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tags

// Palette is the fixed, ordered set of default tag colors.
var Palette = [7]string{
	"#EF4444", // red
	"#F97316", // orange
	"#EAB308", // yellow
	"#22C55E", // green
	"#3B82F6", // blue
	"#8B5CF6", // violet
	"#EC4899", // pink
}

// ColorFor returns the display color of tag. An entry in overrides wins;
// otherwise the color is picked from Palette by Hash.
func ColorFor(tag string, overrides map[string]string) string {
	if c, ok := overrides[tag]; ok {
		return c
	}
	return Palette[PaletteIndex(tag)]
}

// Hash is the 32-bit wraparound multiply-add hash h = h*31 + c over the code
// points of tag.
func Hash(tag string) int32 {
	var h int32
	for _, r := range tag {
		h = h*31 + r
	}
	return h
}

// PaletteIndex maps tag to an index into Palette: |Hash(tag)| mod 7, with the
// absolute value taken in 64 bits so math.MinInt32 stays well defined.
func PaletteIndex(tag string) int {
	h := int64(Hash(tag))
	if h < 0 {
		h = -h
	}
	return int(h % int64(len(Palette)))
}
