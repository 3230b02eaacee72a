// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package filter selects and groups the items shown in the list.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/moya-list/models"
	"golang.org/x/text/cases"
)

// SelectAndGroup applies the four predicates of c (search, status, tags,
// date) with AND semantics and buckets the result by c.GroupBy. Item order
// inside a group follows items. loc is the user's timezone for date matching
// and date groups; nil means time.Local.
//
// GroupNone always yields exactly one group, possibly empty. GroupDate and
// GroupStatus never yield empty groups.
func SelectAndGroup(items []models.Item, c models.FilterCriteria, loc *time.Location) []models.Group {
	if loc == nil {
		loc = time.Local
	}

	selected := Select(items, c, loc)

	switch c.GroupBy {
	case models.GroupDate:
		return groupByDate(selected, loc)
	case models.GroupStatus:
		return groupByStatus(selected)
	default:
		return []models.Group{{Items: selected}}
	}
}

// Select returns the items matching every predicate of c, in input order.
func Select(items []models.Item, c models.FilterCriteria, loc *time.Location) []models.Item {
	if loc == nil {
		loc = time.Local
	}

	fold := cases.Fold()
	query := fold.String(c.SearchQuery)

	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !matchesSearch(item, query, fold) {
			continue
		}
		if !matchesStatus(item, c.StatusFilter) {
			continue
		}
		if !matchesTags(item, c.SelectedTags) {
			continue
		}
		if c.SelectedDate != "" && LocalDate(item.CreatedAt, loc) != c.SelectedDate {
			continue
		}
		out = append(out, item)
	}

	return out
}

// LocalDate formats t as a calendar date in loc.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(models.DateLayout)
}

func matchesSearch(item models.Item, query string, fold cases.Caser) bool {
	if query == "" {
		return true
	}
	return strings.Contains(fold.String(item.Text), query) ||
		strings.Contains(fold.String(item.Description), query)
}

func matchesStatus(item models.Item, f models.StatusFilter) bool {
	switch f {
	case models.FilterSolved:
		return item.Status == models.StatusSolved
	case models.FilterUnsolved:
		return item.Status == models.StatusUnsolved
	default:
		return true
	}
}

// matchesTags uses OR semantics: any selected tag is enough.
func matchesTags(item models.Item, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range selected {
		if item.HasCategory(tag) {
			return true
		}
	}
	return false
}

func groupByDate(items []models.Item, loc *time.Location) []models.Group {
	index := make(map[string]int)
	var groups []models.Group
	for _, item := range items {
		key := LocalDate(item.CreatedAt, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.Group{Key: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	// DateLayout sorts lexicographically in date order.
	slices.SortStableFunc(groups, func(a, b models.Group) int {
		return strings.Compare(b.Key, a.Key)
	})
	return groups
}

func groupByStatus(items []models.Item) []models.Group {
	unsolved := models.Group{Key: string(models.StatusUnsolved)}
	solved := models.Group{Key: string(models.StatusSolved)}
	for _, item := range items {
		if item.Status == models.StatusSolved {
			solved.Items = append(solved.Items, item)
		} else {
			unsolved.Items = append(unsolved.Items, item)
		}
	}

	var groups []models.Group
	if len(unsolved.Items) > 0 {
		groups = append(groups, unsolved)
	}
	if len(solved.Items) > 0 {
		groups = append(groups, solved)
	}
	return groups
}
