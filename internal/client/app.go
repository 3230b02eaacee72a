// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"

	"github.com/MKhiriev/moya-list/internal/capture"
	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/workers"
)

type App struct {
	controller Controller
	storages   io.Closer
	ui         UI
	workers    *workers.Workers

	logger *logger.Logger
}

// NewApp assembles the runtime. The capture bridge is started only when
// captureCfg enables it.
func NewApp(controller Controller, storages io.Closer, ui UI, captureCfg config.ClientCapture, logger *logger.Logger) *App {
	background := workers.NewWorkers(logger)
	if captureCfg.Enabled() {
		background.Add("capture-bridge", capture.NewBridge(controller, captureCfg, logger))
	}

	return &App{
		controller: controller,
		storages:   storages,
		ui:         ui,
		workers:    background,
		logger:     logger,
	}
}

// Run blocks until the UI exits or ctx is cancelled. Background workers are
// stopped when the UI returns. A failing worker is logged and the UI keeps
// running without it.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		if err := a.workers.Run(ctx); err != nil {
			a.logger.Err(err).Str("func", "App.Run").Msg("background worker stopped")
		}
	}()

	err := a.ui.Run(ctx)
	cancel()
	<-workersDone

	return err
}

func (a *App) close() {
	a.controller.Close()
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.close").Msg("error closing local storage")
	}
	a.logger.Info().Msg("client stopped")
}
