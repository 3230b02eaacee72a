// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/moya-list/models"
)

var sortOrderLabels = map[models.TagSortOrder]string{
	models.SortByUsage:      "사용 빈도순",
	models.SortByRecent:     "최근 사용순",
	models.SortAlphabetical: "가나다순",
	models.SortManual:       "직접 정렬",
}

func (m *Model) updateTags(msg tea.KeyMsg) tea.Cmd {
	tagList := m.controller.Tags()
	var current string
	if m.tagCursor >= 0 && m.tagCursor < len(tagList) {
		current = tagList[m.tagCursor]
	}

	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit), key.Matches(msg, keys.tagManager):
		m.mode = modeList
	case key.Matches(msg, keys.up):
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case key.Matches(msg, keys.down):
		if m.tagCursor < len(tagList)-1 {
			m.tagCursor++
		}
	case key.Matches(msg, keys.add):
		m.openInput(inputCategory, "", "")
	case key.Matches(msg, keys.sortOrder):
		next := m.controller.Settings().TagSortOrder.Next()
		return m.cmdWrite(actionSettings, "정렬: "+sortOrderLabels[next], func(ctx context.Context) error {
			return m.controller.SetTagSortOrder(ctx, next)
		})
	}

	if current == "" {
		return nil
	}

	switch {
	case key.Matches(msg, keys.enter), key.Matches(msg, keys.toggle):
		m.toggleSelectedTag(current)
	case key.Matches(msg, keys.rename):
		m.openInput(inputRename, current, current)
	case key.Matches(msg, keys.color):
		m.openInput(inputColor, current, m.controller.Settings().TagColors[current])
	case key.Matches(msg, keys.delete):
		m.prevMode = m.mode
		m.confirmID = ""
		m.confirmTag = current
		m.confirmText = "#" + current
		m.mode = modeConfirmDelete
	case key.Matches(msg, keys.moveUp), key.Matches(msg, keys.moveDown):
		delta := 1
		if key.Matches(msg, keys.moveUp) {
			delta = -1
		}
		m.tagCursor = max(0, min(len(tagList)-1, m.tagCursor+delta))
		return m.cmdWrite(actionSettings, "#"+current+" 위치를 옮겼습니다", func(ctx context.Context) error {
			return m.controller.MoveTag(ctx, current, delta)
		})
	}
	return nil
}

func (m *Model) clampTagCursor() {
	n := len(m.controller.Tags())
	if m.tagCursor >= n {
		m.tagCursor = n - 1
	}
	if m.tagCursor < 0 {
		m.tagCursor = 0
	}
}

func (m *Model) viewTags() string {
	tagList := m.controller.Tags()
	settings := m.controller.Settings()

	var b strings.Builder
	b.WriteString("정렬: " + sortOrderLabels[settings.TagSortOrder] + "\n\n")

	if len(tagList) == 0 {
		b.WriteString("태그가 없습니다")
	}
	for i, tag := range tagList {
		line := "  "
		if i == m.tagCursor {
			line = cursorStyle.Render("› ")
		}

		name := chip(tag, m.controller.ColorFor(tag))
		if slices.Contains(m.criteria.SelectedTags, tag) {
			name = selectedChip.Render("#"+tag) + " ✓"
		}
		line += name

		if c, ok := settings.TagColors[tag]; ok {
			line += "  " + helpStyle.Render(c)
		}
		b.WriteString(line + "\n")
	}

	if m.mode == modeInput {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}

	return renderPage("태그 관리", b.String(),
		"enter 필터  a 추가  r 이름 변경  d 삭제  C 색상  K/J 순서  o 정렬 방식  esc 뒤로")
}
