// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal interface of the moya-list client.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

type TUI struct {
	controller Controller
	buildInfo  models.AppBuildInfo
	logger     *logger.Logger
}

func New(controller Controller, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{controller: controller, buildInfo: buildInfo, logger: logger}
}

// Run shows the interface until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := NewModel(ctx, t.controller, t.buildInfo)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("terminal interface stopped")
		return err
	}

	t.logger.Info().Msg("terminal interface closed")
	return nil
}
