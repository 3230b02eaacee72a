// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "strconv"

type confirmModel struct {
	message string
}

func (m confirmModel) View() string {
	content := "\"" + m.message + "\"\n삭제하시겠습니까?\n\n"
	content += "y 예    n 아니오"
	return overlayBoxStyle.Render(content)
}

type migrationPromptModel struct {
	count int
}

func (m migrationPromptModel) View() string {
	content := "로컬 모드에서 작성한 항목 " + strconv.Itoa(m.count) + "개가 있습니다.\n"
	content += "계정으로 가져올까요?\n\n"
	content += "y 가져오기    n 버리기"
	return overlayBoxStyle.Render(content)
}
