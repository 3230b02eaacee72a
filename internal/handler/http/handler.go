// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/metrics"
	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/internal/sse"
	"github.com/MKhiriev/moya-list/internal/validators"
)

// maxJSONBodySize caps every JSON request body.
const maxJSONBodySize = 1 << 20

type Handler struct {
	services  *service.Services
	streams   *sse.Manager
	metrics   *metrics.Collector
	validator validators.Validator
	cfg       config.Server

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. collector may be nil, in which case
// neither request metrics nor /metrics are served.
func NewHandler(services *service.Services, streams *sse.Manager, collector *metrics.Collector, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		streams:   streams,
		metrics:   collector,
		validator: validators.NewRequestValidator(),
		cfg:       cfg,
		logger:    logger,
	}
}
