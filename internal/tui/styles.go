// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	cursorStyle  = lipgloss.NewStyle().Bold(true)
	solvedStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	newStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	groupStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	selectedChip = lipgloss.NewStyle().Reverse(true)
)

// chip renders #tag in its resolved color.
func chip(tag, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("#" + tag)
}
