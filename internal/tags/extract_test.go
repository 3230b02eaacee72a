// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "dedup keeps first-seen order", text: "#a #b #a 텍스트", want: []string{"a", "b"}},
		{name: "no tags", text: "no tags here", want: []string{}},
		{name: "empty input", text: "", want: []string{}},
		{name: "hangul tag", text: "오늘 #알고리즘 공부", want: []string{"알고리즘"}},
		{name: "repeated mixed script", text: "리액트 #React #React 질문", want: []string{"React"}},
		{name: "digits and underscore", text: "#go_1 and #v2", want: []string{"go_1", "v2"}},
		{name: "punctuation ends tag", text: "#css, #html.", want: []string{"css", "html"}},
		{name: "lone hash", text: "# nothing", want: []string{}},
		{name: "case sensitive", text: "#Go #go", want: []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestMerge(t *testing.T) {
	known := []string{"HTML", "CSS"}

	got := Merge(known, []string{"CSS", "React", "React"})

	assert.Equal(t, []string{"HTML", "CSS", "React"}, got)
	assert.Equal(t, []string{"HTML", "CSS"}, known, "input must not be modified")
}
