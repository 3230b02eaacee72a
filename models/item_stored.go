// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// StoredItem is the persisted JSON shape of an item across schema versions.
// Older records carry a single `category` instead of `categories` and may
// omit description and images entirely.
type StoredItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Category    string     `json:"category,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
	Description string     `json:"description,omitempty"`
	Images      []ImageRef `json:"images,omitempty"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Item converts a stored record into the current Item shape. This is the
// only place the legacy `category` field is read.
func (s StoredItem) Item() Item {
	categories := s.Categories
	if categories == nil && s.Category != "" {
		categories = []string{s.Category}
	}

	return NormalizeItem(Item{
		ID:          s.ID,
		Text:        s.Text,
		Categories:  categories,
		Description: s.Description,
		Images:      s.Images,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	})
}
