// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tags

import (
	"slices"
	"time"

	"github.com/MKhiriev/moya-list/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Known returns the user's category list followed by any tag that appears on
// an item but is missing from it, in item order.
func Known(categories []string, items []models.Item) []string {
	out := append([]string(nil), categories...)
	for _, item := range items {
		out = Merge(out, item.Categories)
	}
	return out
}

// Order sorts list according to mode. Ties always keep the order of list,
// which is the discovery order of the tags.
func Order(list []string, items []models.Item, mode models.TagSortOrder, manual []string) []string {
	out := append([]string(nil), list...)

	switch mode {
	case models.SortByUsage:
		usage := make(map[string]int, len(out))
		for _, item := range items {
			for _, c := range item.Categories {
				usage[c]++
			}
		}
		slices.SortStableFunc(out, func(a, b string) int {
			return usage[b] - usage[a]
		})

	case models.SortByRecent:
		latest := make(map[string]time.Time, len(out))
		for _, item := range items {
			for _, c := range item.Categories {
				if item.CreatedAt.After(latest[c]) {
					latest[c] = item.CreatedAt
				}
			}
		}
		slices.SortStableFunc(out, func(a, b string) int {
			return latest[b].Compare(latest[a])
		})

	case models.SortAlphabetical:
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b string) int {
			return col.CompareString(a, b)
		})

	case models.SortManual:
		out = manualOrder(out, manual)
	}

	return out
}

// manualOrder puts the tags of list that appear in manual first, in manual
// order, and appends the rest in their original order.
func manualOrder(list, manual []string) []string {
	present := make(map[string]bool, len(list))
	for _, t := range list {
		present[t] = true
	}

	out := make([]string, 0, len(list))
	placed := make(map[string]bool, len(list))
	for _, t := range manual {
		if present[t] && !placed[t] {
			out = append(out, t)
			placed[t] = true
		}
	}
	for _, t := range list {
		if !placed[t] {
			out = append(out, t)
			placed[t] = true
		}
	}
	return out
}

// Move returns order with tag shifted by delta positions (negative moves it
// towards the front), clamped to the list bounds. A tag missing from order
// is returned unchanged.
func Move(order []string, tag string, delta int) []string {
	out := append([]string(nil), order...)
	idx := slices.Index(out, tag)
	if idx < 0 {
		return out
	}

	target := min(max(idx+delta, 0), len(out)-1)
	out = slices.Delete(out, idx, idx+1)
	return slices.Insert(out, target, tag)
}
