// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the moya-list transport servers.
//
// It starts the HTTP API and the gRPC health listener, waits for a
// termination signal and shuts everything down gracefully: snapshot streams
// are closed first so that in-flight HTTP requests can drain.
package server
