// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/handler"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/metrics"
	"github.com/MKhiriev/moya-list/internal/server"
	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/internal/sse"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("moya-list-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	collector := metrics.NewCollector()
	streams := sse.NewManager(cfg.Server.HeartbeatInterval, log)
	streams.OnCountChange(func(topic models.ChangeTopic, delta int) {
		collector.StreamSubscribers.WithLabelValues(string(topic)).Add(float64(delta))
	})

	services, err := service.NewServices(storages, streams, collector, buildInfo, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, streams, collector, storages, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, streams, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
