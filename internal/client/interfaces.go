// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/moya-list/internal/capture"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the foreground interface. Its return ends the process.
type UI interface {
	Run(ctx context.Context) error
}

// Controller is the part of the sync controller the runtime owns: it
// receives captures and is closed on exit.
type Controller interface {
	capture.Submitter
	Close()
}
