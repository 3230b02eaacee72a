// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/moya-list/internal/adapter"
	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/utils"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	// Remote and Auth are nil when no backend is configured.
	Remote RemoteStore
	Auth   AuthGateway

	Sync *SyncController
}

// NewClientServices wires the client services. A nil serverAdapter selects
// guest-only mode.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	backend := Unconfigured()

	var (
		remote RemoteStore
		auth   AuthGateway
	)
	if serverAdapter != nil {
		remote = NewRemoteStore(serverAdapter, cfg.Adapter.ReconnectInterval, logger)
		auth = NewAuthGateway(serverAdapter, storages.Local, logger)
		backend = Configured(remote, auth)
	}

	return &ClientServices{
		Remote: remote,
		Auth:   auth,
		Sync:   NewSyncController(backend, storages.Local, storages.Blobs, utils.NewUUIDGenerator(), cfg.Workers.MigrationConcurrency, logger),
	}
}
