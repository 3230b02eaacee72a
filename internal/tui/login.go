// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/moya-list/models"
)

// loginModel is the sign-in and registration form. The name field is only
// shown when registering.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	register   bool
	submitting bool
	errMsg     string
}

func newLoginModel() loginModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "email"
	loginInput.CharLimit = 254
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 72
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	nameInput := textinput.New()
	nameInput.Placeholder = "name"
	nameInput.CharLimit = 100
	nameInput.Width = 40

	return loginModel{inputs: []textinput.Model{loginInput, passwordInput, nameInput}}
}

func (m loginModel) fields() int {
	if m.register {
		return len(m.inputs)
	}
	return 2
}

func (m loginModel) setFocus(i int) loginModel {
	n := m.fields()
	m.focus = ((i % n) + n) % n
	for idx := range m.inputs {
		if idx == m.focus {
			m.inputs[idx].Focus()
		} else {
			m.inputs[idx].Blur()
		}
	}
	return m
}

func (m loginModel) toggleRegister() loginModel {
	m.register = !m.register
	m.errMsg = ""
	return m.setFocus(m.focus)
}

func (m loginModel) credentials() models.Credentials {
	c := models.Credentials{
		Login:    strings.TrimSpace(m.inputs[0].Value()),
		Password: m.inputs[1].Value(),
	}
	if m.register {
		c.Name = strings.TrimSpace(m.inputs[2].Value())
	}
	return c
}

// validate mirrors the server's credential rules so obvious mistakes do not
// need a round trip.
func (m loginModel) validate() string {
	c := m.credentials()
	if c.Login == "" || c.Password == "" {
		return "아이디와 비밀번호를 입력하세요."
	}
	if len(c.Password) < 6 {
		return "비밀번호는 6자 이상이어야 합니다."
	}
	return ""
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	title := "로그인"
	if m.register {
		title = "회원가입"
	}

	var b strings.Builder
	b.WriteString("아이디:   [" + m.inputs[0].View() + "]\n")
	b.WriteString("비밀번호: [" + m.inputs[1].View() + "]\n")
	if m.register {
		b.WriteString("이름:     [" + m.inputs[2].View() + "]\n")
	}
	if m.submitting {
		b.WriteString("\n" + statusStyle.Render("확인 중..."))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	switchHint := "ctrl+r 회원가입"
	if m.register {
		switchHint = "ctrl+r 로그인"
	}
	return renderPage(title, b.String(), "enter 확인  tab 다음 칸  "+switchHint+"  esc 취소")
}
