// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tags

import (
	"github.com/MKhiriev/moya-list/models"
)

// Rename replaces tag from with to on every item, in the category list, in
// the color overrides and in the manual order. It returns only the items that
// changed and the updated settings; the inputs are not modified.
//
// When to already exists the lists are deduplicated, keeping the first
// occurrence. An existing override for to is replaced by the one for from.
func Rename(items []models.Item, s models.Settings, from, to string) ([]models.Item, models.Settings) {
	out := s.Clone()
	if from == to || to == "" {
		return nil, out
	}

	var changed []models.Item
	for _, item := range items {
		if !item.HasCategory(from) {
			continue
		}
		next := item.Clone()
		next.Categories = models.NormalizeCategories(replace(next.Categories, from, to))
		changed = append(changed, next)
	}

	out.Categories = dedupe(replace(out.Categories, from, to))
	out.CustomTagOrder = dedupe(replace(out.CustomTagOrder, from, to))
	if c, ok := out.TagColors[from]; ok {
		delete(out.TagColors, from)
		out.TagColors[to] = c
	}

	return changed, out
}

// Remove deletes tag from every item, from the category list, the color
// overrides and the manual order. Items are never deleted: one left without
// categories gets models.MiscTag. Only changed items are returned.
func Remove(items []models.Item, s models.Settings, tag string) ([]models.Item, models.Settings) {
	out := s.Clone()

	var changed []models.Item
	for _, item := range items {
		if !item.HasCategory(tag) {
			continue
		}
		next := item.Clone()
		next.Categories = models.NormalizeCategories(without(next.Categories, tag))
		changed = append(changed, next)
	}

	out.Categories = without(out.Categories, tag)
	out.CustomTagOrder = without(out.CustomTagOrder, tag)
	delete(out.TagColors, tag)

	return changed, out
}

func replace(list []string, from, to string) []string {
	out := make([]string, len(list))
	for i, v := range list {
		if v == from {
			v = to
		}
		out[i] = v
	}
	return out
}

func without(list []string, tag string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != tag {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(list []string) []string {
	return Merge(nil, list)
}
