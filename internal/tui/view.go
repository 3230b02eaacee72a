// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/models"
)

var (
	statusFilterLabels = map[models.StatusFilter]string{
		models.FilterAll:      "전체",
		models.FilterUnsolved: "미해결",
		models.FilterSolved:   "해결됨",
	}
	groupByLabels = map[models.GroupBy]string{
		models.GroupNone:   "없음",
		models.GroupDate:   "날짜",
		models.GroupStatus: "상태",
	}
	itemStatusLabels = map[models.ItemStatus]string{
		models.StatusUnsolved: "미해결",
		models.StatusSolved:   "해결됨",
	}
)

func (m *Model) View() string {
	if m.errMsg != "" {
		return overlay(m.width, m.height, errorOverlayModel{message: m.errMsg}.View())
	}

	var page string
	switch m.mode {
	case modeBuildInfo:
		page = renderBuildInfoWindow(m.buildInfo)
	case modeConfirmDelete:
		return overlay(m.width, m.height, confirmModel{message: m.confirmText}.View())
	case modeMigration:
		return overlay(m.width, m.height, migrationPromptModel{count: m.controller.PendingMigration()}.View())
	case modeLogin:
		page = m.login.View()
	case modeTags:
		page = m.viewTags()
	case modeDetail:
		page = m.viewDetail()
	case modeInput:
		if m.prevMode == modeDetail {
			page = m.viewDetail()
		} else if m.prevMode == modeTags {
			page = m.viewTags()
		} else {
			page = m.viewList()
		}
	default:
		page = m.viewList()
	}
	return appStyle.Render(page)
}

// sessionLabel describes where the data lives.
func (m *Model) sessionLabel() string {
	if !m.controller.Configured() {
		return "로컬 모드 (서버 설정 없음)"
	}
	switch m.controller.State() {
	case service.StateAuthenticated:
		label := "연동됨"
		if identity := m.controller.Identity(); identity != nil {
			label += ": " + identity.Label()
		}
		return label
	case service.StateGuest:
		return "로컬 모드"
	default:
		return "로그인 확인 중..."
	}
}

func (m *Model) filterLine() string {
	parts := []string{"상태: " + statusFilterLabels[m.criteria.StatusFilter]}
	if m.criteria.SearchQuery != "" {
		parts = append(parts, "검색: "+m.criteria.SearchQuery)
	}
	if len(m.criteria.SelectedTags) > 0 {
		chips := make([]string, 0, len(m.criteria.SelectedTags))
		for _, tag := range m.criteria.SelectedTags {
			chips = append(chips, chip(tag, m.controller.ColorFor(tag)))
		}
		parts = append(parts, "태그: "+strings.Join(chips, " "))
	}
	if m.criteria.SelectedDate != "" {
		parts = append(parts, "날짜: "+m.criteria.SelectedDate)
	}
	parts = append(parts, "그룹: "+groupByLabels[m.criteria.GroupBy])
	return strings.Join(parts, "  ")
}

func (m *Model) viewList() string {
	var b strings.Builder

	b.WriteString(statusStyle.Render(m.sessionLabel()))
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	groups := m.controller.View(m.criteria, m.loc)
	lastAdded := m.controller.LastAddedID()
	textWidth := 60
	if m.width > 30 {
		textWidth = m.width - 30
	}

	index := 0
	for _, g := range groups {
		if g.Key != "" {
			b.WriteString(groupStyle.Render(groupTitle(m.criteria.GroupBy, g)))
			b.WriteString("\n")
		}
		for _, item := range g.Items {
			b.WriteString(m.renderRow(item, index == m.cursor, item.ID == lastAdded, textWidth))
			b.WriteString("\n")
			index++
		}
	}

	if index == 0 {
		if len(m.criteria.SelectedTags) == 0 && m.criteria.SearchQuery == "" && m.criteria.SelectedDate == "" &&
			m.criteria.StatusFilter == models.FilterAll {
			b.WriteString("첫 궁금증을 등록해보세요\n")
			b.WriteString(helpStyle.Render("n을 누르고 입력 후 enter를 누르세요. #태그로 카테고리 지정"))
		} else {
			b.WriteString("조건에 맞는 항목이 없습니다")
		}
	}

	if m.mode == modeInput {
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	return renderPage("moya-list", b.String(),
		"n 새 항목  space 상태  enter 상세  d 삭제  c 복사  / 검색  f 상태 필터  D 날짜  g 그룹  t 태그  l 계정  v 정보  q 종료")
}

func groupTitle(by models.GroupBy, g models.Group) string {
	title := g.Key
	if by == models.GroupStatus {
		title = itemStatusLabels[models.ItemStatus(g.Key)]
	}
	return title + " (" + strconv.Itoa(len(g.Items)) + ")"
}

func (m *Model) renderRow(item models.Item, selected, isNew bool, textWidth int) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("› ")
	}

	icon := "○ "
	text := fitText(firstLine(item.Text), textWidth)
	if item.Status == models.StatusSolved {
		icon = "✔ "
		text = solvedStyle.Render(text)
	}

	row := prefix + icon + text
	for _, tag := range item.Categories {
		row += " " + chip(tag, m.controller.ColorFor(tag))
	}
	if len(item.Images) > 0 {
		row += helpStyle.Render(" [이미지 " + strconv.Itoa(len(item.Images)) + "]")
	}
	if isNew {
		row += " " + newStyle.Render("NEW")
	}
	return row
}

func (m *Model) viewDetail() string {
	item, ok := m.controller.Item(m.detailID)
	if !ok {
		return renderPage("상세", "항목이 삭제되었습니다", "esc 뒤로")
	}

	var b strings.Builder
	b.WriteString(item.Text)
	b.WriteString("\n\n")

	chips := make([]string, 0, len(item.Categories))
	for _, tag := range item.Categories {
		chips = append(chips, chip(tag, m.controller.ColorFor(tag)))
	}
	b.WriteString("카테고리: " + strings.Join(chips, " ") + "\n")
	b.WriteString("상태: " + itemStatusLabels[item.Status] + "\n")
	if !item.CreatedAt.IsZero() {
		b.WriteString("등록: " + item.CreatedAt.In(m.loc).Format("2006-01-02 15:04") + "\n")
	}

	b.WriteString("\n설명:\n")
	if item.Description != "" {
		b.WriteString(item.Description + "\n")
	} else {
		b.WriteString(helpStyle.Render("-") + "\n")
	}

	if len(item.Images) > 0 {
		b.WriteString("\n이미지:\n")
		for _, ref := range item.Images {
			b.WriteString("  " + fitText(string(ref), 24) + "\n")
		}
	}

	if m.mode == modeInput {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}

	return renderPage("상세", b.String(),
		"space 상태  e 설명  i 이미지 첨부  I 마지막 이미지 빼기  c 복사  d 삭제  esc 뒤로")
}
