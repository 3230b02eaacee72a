// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the standard gRPC health service of the moya-list
// server. Load balancers and orchestrators poll it; the status follows the
// database reachability.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/moya-list/internal/logger"
)

// ServiceName is the health service name reported next to the overall ("")
// status.
const ServiceName = "moya.list.v1"

// Pinger reports whether a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server
	pinger Pinger

	logger *logger.Logger
}

// NewHandler returns a handler whose health status is driven by pinger. A nil
// pinger reports SERVING unconditionally.
func NewHandler(pinger Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		pinger: pinger,
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)
	return h
}

// Register attaches the health service to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// Watch pings the dependency every interval and updates the status until ctx
// is cancelled.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	if h.pinger == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		h.Check(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Check pings once and stores the resulting status.
func (h *Handler) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := h.pinger.Ping(pingCtx); err != nil {
			h.logger.Warn().Err(err).Str("func", "grpc.Handler.Check").Msg("dependency is not reachable")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.setStatus(status)
	return status
}

// Shutdown marks every service NOT_SERVING so that health checks fail while the
// server drains.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
