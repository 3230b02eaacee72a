// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/moya-list/models"
)

type inputPurpose int

const (
	inputNewItem inputPurpose = iota
	inputSearch
	inputDescription
	inputImagePath
	inputDate
	inputCategory
	inputRename
	inputColor
)

var inputLabels = map[inputPurpose]string{
	inputNewItem:     "궁금한 것을 입력하세요... #태그로 카테고리 지정",
	inputSearch:      "검색",
	inputDescription: "설명 (최대 200자)",
	inputImagePath:   "이미지 파일 경로",
	inputDate:        "날짜 (YYYY-MM-DD, 비우면 해제)",
	inputCategory:    "새 카테고리",
	inputRename:      "새 이름",
	inputColor:       "색상 (#RRGGBB, 비우면 기본색)",
}

// inputModel is the single text field shared by every prompt. The
// description uses a textarea, everything else a one-line input.
type inputModel struct {
	purpose    inputPurpose
	target     string
	text       textinput.Model
	area       textarea.Model
	submitting bool
}

func newInput(purpose inputPurpose, target, value string) inputModel {
	in := inputModel{purpose: purpose, target: target}

	if purpose == inputDescription {
		in.area = textarea.New()
		in.area.CharLimit = models.MaxDescriptionLength
		in.area.SetWidth(60)
		in.area.SetHeight(4)
		in.area.ShowLineNumbers = false
		in.area.SetValue(value)
		in.area.Focus()
		return in
	}

	in.text = textinput.New()
	in.text.Width = 60
	in.text.Placeholder = inputLabels[purpose]
	if purpose == inputNewItem {
		in.text.CharLimit = 10000
	}
	in.text.SetValue(value)
	in.text.CursorEnd()
	in.text.Focus()
	return in
}

func (in inputModel) multiline() bool {
	return in.purpose == inputDescription
}

func (in inputModel) Value() string {
	if in.multiline() {
		return in.area.Value()
	}
	return in.text.Value()
}

func (in inputModel) update(msg tea.Msg) (inputModel, tea.Cmd) {
	var cmd tea.Cmd
	if in.multiline() {
		in.area, cmd = in.area.Update(msg)
	} else {
		in.text, cmd = in.text.Update(msg)
	}
	return in, cmd
}

func (in inputModel) View() string {
	out := inputLabels[in.purpose]
	if in.target != "" && in.purpose != inputDescription && in.purpose != inputImagePath {
		out += ": " + in.target
	}
	out += "\n"

	if in.multiline() {
		out += in.area.View() + "\n"
		out += helpStyle.Render("ctrl+s 저장  esc 취소")
	} else {
		out += "[" + in.text.View() + "]\n"
		out += helpStyle.Render("enter 확인  esc 취소")
	}

	if in.submitting {
		out += "  " + statusStyle.Render("저장 중...")
	}
	return out
}
