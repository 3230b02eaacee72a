// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
	"unicode/utf8"
)

const (
	// MiscTag is the category assigned to an item whose text carries no
	// hashtags, and the fallback applied when an item loses its last tag.
	MiscTag = "기타"

	// MaxImages is the maximum number of image references an item may hold.
	MaxImages = 4

	// MaxDescriptionLength is the maximum description length in runes.
	MaxDescriptionLength = 200
)

// ItemStatus is the solve state of a captured item.
type ItemStatus string

const (
	// StatusUnsolved is the default status of every new item.
	StatusUnsolved ItemStatus = "unsolved"
	// StatusSolved marks an item the user has resolved.
	StatusSolved ItemStatus = "solved"
)

// Toggle returns the opposite status. Unknown values toggle to solved.
func (s ItemStatus) Toggle() ItemStatus {
	if s == StatusSolved {
		return StatusUnsolved
	}
	return StatusSolved
}

// Valid reports whether s is one of the known statuses.
func (s ItemStatus) Valid() bool {
	return s == StatusSolved || s == StatusUnsolved
}

// ImageRef is an opaque reference to an image blob stored outside the item
// (see BlobStorage). Items never carry inline image payloads.
type ImageRef string

// Item is a single captured question or note.
type Item struct {
	// ID is stable for the item's lifetime. Assigned by the server on cloud
	// creation or generated by the client (uuid v7) in guest mode.
	ID string `json:"id" validate:"omitempty,uuid"`

	// Text is the captured content exactly as entered. Never empty.
	Text string `json:"text" validate:"required,max=10000"`

	// Categories is the ordered, duplicate-free tag list. Never empty.
	Categories []string `json:"categories"`

	// Description is an optional annotation of at most MaxDescriptionLength runes.
	Description string `json:"description,omitempty"`

	// Images holds at most MaxImages blob references.
	Images []ImageRef `json:"images,omitempty" validate:"max=4,dive,required"`

	// Status is either StatusUnsolved or StatusSolved.
	Status ItemStatus `json:"status" validate:"omitempty,oneof=unsolved solved"`

	// CreatedAt is server-assigned for cloud items and client-assigned in
	// guest mode. Lists are ordered by it, newest first.
	CreatedAt time.Time `json:"createdAt"`
}

// HasCategory reports whether tag is one of the item's categories.
func (i Item) HasCategory(tag string) bool {
	for _, c := range i.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	out.Categories = append([]string(nil), i.Categories...)
	if i.Images != nil {
		out.Images = append([]ImageRef(nil), i.Images...)
	}
	return out
}

// ItemUpdate is a partial update of an item. Nil fields are left untouched.
type ItemUpdate struct {
	Text        *string     `json:"text,omitempty" validate:"omitempty,min=1"`
	Categories  *[]string   `json:"categories,omitempty"`
	Description *string     `json:"description,omitempty"`
	Images      *[]ImageRef `json:"images,omitempty" validate:"omitempty,max=4"`
	Status      *ItemStatus `json:"status,omitempty" validate:"omitempty,oneof=unsolved solved"`
}

// IsEmpty reports whether the update changes nothing.
func (u ItemUpdate) IsEmpty() bool {
	return u.Text == nil && u.Categories == nil && u.Description == nil && u.Images == nil && u.Status == nil
}

// Apply returns a copy of item with the non-nil fields of u applied and the
// item invariants re-established.
func (u ItemUpdate) Apply(item Item) Item {
	out := item.Clone()
	if u.Text != nil {
		out.Text = *u.Text
	}
	if u.Categories != nil {
		out.Categories = append([]string(nil), (*u.Categories)...)
	}
	if u.Description != nil {
		out.Description = *u.Description
	}
	if u.Images != nil {
		out.Images = append([]ImageRef(nil), (*u.Images)...)
	}
	if u.Status != nil {
		out.Status = *u.Status
	}
	return NormalizeItem(out)
}

// Normalize re-establishes the invariants on the non-nil fields of u so the
// stored result is valid regardless of what the caller sent.
func (u ItemUpdate) Normalize() ItemUpdate {
	if u.Categories != nil {
		cats := NormalizeCategories(*u.Categories)
		u.Categories = &cats
	}
	if u.Description != nil {
		d := TruncateDescription(*u.Description)
		u.Description = &d
	}
	if u.Images != nil {
		imgs := *u.Images
		if len(imgs) > MaxImages {
			imgs = imgs[:MaxImages]
		}
		imgs = append([]ImageRef(nil), imgs...)
		u.Images = &imgs
	}
	return u
}

// NormalizeItem enforces the item invariants: categories are deduplicated and
// non-empty, the description is truncated, at most MaxImages images are kept
// and an unknown status becomes StatusUnsolved.
func NormalizeItem(item Item) Item {
	item.Categories = NormalizeCategories(item.Categories)
	item.Description = TruncateDescription(item.Description)
	if len(item.Images) > MaxImages {
		item.Images = append([]ImageRef(nil), item.Images[:MaxImages]...)
	}
	if !item.Status.Valid() {
		item.Status = StatusUnsolved
	}
	return item
}

// NormalizeCategories drops empty and duplicate names, keeping first-seen
// order, and falls back to MiscTag when nothing is left.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		out = append(out, MiscTag)
	}
	return out
}

// TruncateDescription cuts s to MaxDescriptionLength runes.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxDescriptionLength])
}
