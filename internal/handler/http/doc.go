// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the server.
//
// It exposes route wiring, request handlers and middleware for the REST API
// and the snapshot streams. Authentication, request tracing, access logging,
// metrics, rate limiting and response compression are handled here before
// requests are delegated to the service layer.
package http
