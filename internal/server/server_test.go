// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/handler"
	myGRPC "github.com/MKhiriev/moya-list/internal/handler/grpc"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/sse"
)

func testHandlers(t *testing.T, cfg config.Server) (*handler.Handlers, *sse.Manager) {
	t.Helper()
	streams := sse.NewManager(time.Minute, logger.Nop())
	handlers, err := handler.NewHandlers(nil, streams, nil, nil, cfg, logger.Nop())
	require.NoError(t, err)
	return handlers, streams
}

func TestNewServer_NoServers(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewServer_SkipsMissingHandler(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}
	grpcOnly := &handler.Handlers{GRPC: myGRPC.NewHandler(nil, logger.Nop())}

	srv, err := NewServer(grpcOnly, nil, cfg, logger.Nop())

	require.NoError(t, err)
	s := srv.(*server)
	assert.Nil(t, s.httpServer)
	assert.NotNil(t, s.gRPCServer)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}
	handlers, streams := testHandlers(t, cfg)

	srv, err := NewServer(handlers, streams, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.(*server).run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunWithoutServers(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.ErrorIs(t, s.run(context.Background()), errNoServersToRun)
}
