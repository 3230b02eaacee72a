// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tags

import "regexp"

// hashtagPattern matches '#' followed by Unicode word characters: letters of
// any script, combining marks, digits and underscore.
var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{M}\p{N}_]+)`)

// Extract returns the hashtags found in text without the leading '#',
// deduplicated in first-seen order. It returns an empty, non-nil slice when
// there are none.
func Extract(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)

	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		tag := m[1]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}

// Merge appends the tags of discovered that are missing from known and
// returns the result. known is not modified.
func Merge(known, discovered []string) []string {
	out := append([]string(nil), known...)
	seen := make(map[string]struct{}, len(known))
	for _, k := range known {
		seen[k] = struct{}{}
	}
	for _, d := range discovered {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
