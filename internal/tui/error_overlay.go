// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("오류") + "\n\n" + m.message + "\n\n" + helpStyle.Render("아무 키나 눌러 닫기")
	return overlayBoxStyle.Render(content)
}
