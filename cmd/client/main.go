// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/moya-list/internal/adapter"
	"github.com/MKhiriev/moya-list/internal/client"
	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/tui"
	"github.com/MKhiriev/moya-list/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logger.NewClientLogger("moya-list-client", cfg.App.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log.Info().
		Str("version", buildInfo.Version).
		Str("commit", buildInfo.Commit).
		Bool("remote", cfg.Adapter.Configured()).
		Str("capture", cfg.Capture.Address).
		Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	var serverAdapter adapter.ServerAdapter
	if cfg.Adapter.Configured() {
		serverAdapter, err = adapter.NewHTTPServerAdapter(cfg.Adapter, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create server adapter")
		}
	}

	services := service.NewClientServices(storages, serverAdapter, cfg, log)
	ui := tui.New(services.Sync, buildInfo, log)

	app := client.NewApp(services.Sync, storages, ui, cfg.Capture, log)
	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}
}
