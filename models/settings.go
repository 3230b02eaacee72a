// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TagSortOrder selects how the tag list is ordered in the UI.
type TagSortOrder string

const (
	// SortByUsage orders tags by the number of items carrying them, descending.
	SortByUsage TagSortOrder = "usage"
	// SortByRecent orders tags by the newest item carrying them, descending.
	SortByRecent TagSortOrder = "recent"
	// SortAlphabetical orders tags lexicographically.
	SortAlphabetical TagSortOrder = "alphabetical"
	// SortManual follows Settings.CustomTagOrder.
	SortManual TagSortOrder = "manual"
)

// TagSortOrders lists every sort order in UI cycling order.
var TagSortOrders = []TagSortOrder{SortByUsage, SortByRecent, SortAlphabetical, SortManual}

// Valid reports whether o is a known sort order.
func (o TagSortOrder) Valid() bool {
	for _, known := range TagSortOrders {
		if o == known {
			return true
		}
	}
	return false
}

// Next returns the sort order following o in TagSortOrders.
func (o TagSortOrder) Next() TagSortOrder {
	for i, known := range TagSortOrders {
		if o == known {
			return TagSortOrders[(i+1)%len(TagSortOrders)]
		}
	}
	return SortByUsage
}

// DefaultCategories is the category list of a user that has none persisted.
var DefaultCategories = []string{"HTML", "CSS", "React", "수학", "알고리즘"}

// Settings is the per-user settings document.
type Settings struct {
	// Categories is the user's known tag list in discovery order.
	Categories []string `json:"categories"`

	// TagColors maps a tag to an explicit display color, overriding the
	// hash-derived default.
	TagColors map[string]string `json:"tagColors"`

	// CustomTagOrder is the persisted permutation used by SortManual.
	CustomTagOrder []string `json:"customTagOrder"`

	// TagSortOrder is the selected ordering of the tag list.
	TagSortOrder TagSortOrder `json:"tagSortOrder"`
}

// DefaultSettings returns the settings of a fresh user.
func DefaultSettings() Settings {
	return Settings{
		Categories:     append([]string(nil), DefaultCategories...),
		TagColors:      map[string]string{},
		CustomTagOrder: []string{},
		TagSortOrder:   SortByUsage,
	}
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := Settings{
		Categories:     cloneStrings(s.Categories),
		TagColors:      make(map[string]string, len(s.TagColors)),
		CustomTagOrder: cloneStrings(s.CustomTagOrder),
		TagSortOrder:   s.TagSortOrder,
	}
	for k, v := range s.TagColors {
		out.TagColors[k] = v
	}
	return out
}

// cloneStrings copies src keeping the nil/empty distinction.
func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// SettingsPatch is a merge-write against the settings document. Nil fields
// keep their stored value.
type SettingsPatch struct {
	Categories     *[]string          `json:"categories,omitempty"`
	TagColors      *map[string]string `json:"tagColors,omitempty"`
	CustomTagOrder *[]string          `json:"customTagOrder,omitempty"`
	TagSortOrder   *TagSortOrder      `json:"tagSortOrder,omitempty" validate:"omitempty,oneof=usage recent alphabetical manual"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Categories == nil && p.TagColors == nil && p.CustomTagOrder == nil && p.TagSortOrder == nil
}

// Apply merges p into s and returns the result. s is not modified.
func (p SettingsPatch) Apply(s Settings) Settings {
	out := s.Clone()
	if p.Categories != nil {
		out.Categories = append([]string(nil), (*p.Categories)...)
	}
	if p.TagColors != nil {
		out.TagColors = make(map[string]string, len(*p.TagColors))
		for k, v := range *p.TagColors {
			out.TagColors[k] = v
		}
	}
	if p.CustomTagOrder != nil {
		out.CustomTagOrder = append([]string(nil), (*p.CustomTagOrder)...)
	}
	if p.TagSortOrder != nil {
		out.TagSortOrder = *p.TagSortOrder
	}
	return out
}
