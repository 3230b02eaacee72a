// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sse streams per-user snapshots over Server-Sent Events.
//
// Writers call [Manager.Notify] after a successful change. A notification
// carries no payload: the [Handler] re-reads the full snapshot for the user
// and sends it, so several notifications that pile up while a slow client is
// being written to collapse into one frame with the latest state.
package sse
