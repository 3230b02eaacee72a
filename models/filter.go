// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StatusFilter restricts the list by item status.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterSolved   StatusFilter = "solved"
	FilterUnsolved StatusFilter = "unsolved"
)

// Next cycles all -> unsolved -> solved -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case FilterAll, "":
		return FilterUnsolved
	case FilterUnsolved:
		return FilterSolved
	default:
		return FilterAll
	}
}

// GroupBy selects how the filtered list is bucketed.
type GroupBy string

const (
	GroupNone   GroupBy = "none"
	GroupDate   GroupBy = "date"
	GroupStatus GroupBy = "status"
)

// Next cycles none -> date -> status -> none.
func (g GroupBy) Next() GroupBy {
	switch g {
	case GroupNone, "":
		return GroupDate
	case GroupDate:
		return GroupStatus
	default:
		return GroupNone
	}
}

// DateLayout is the calendar date format used by FilterCriteria.SelectedDate
// and date group keys.
const DateLayout = "2006-01-02"

// FilterCriteria is the full set of list filters. The zero value shows
// everything ungrouped.
type FilterCriteria struct {
	SearchQuery  string
	StatusFilter StatusFilter
	SelectedTags []string
	// SelectedDate is a local calendar date in DateLayout, or empty.
	SelectedDate string
	GroupBy      GroupBy
}

// Group is one bucket of the displayed list. Key is empty for GroupNone, a
// DateLayout date for GroupDate and the status for GroupStatus.
type Group struct {
	Key   string
	Items []Item
}
