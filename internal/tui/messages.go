// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/moya-list/internal/service"
	"github.com/MKhiriev/moya-list/models"
)

// eventMsg wraps a SyncController notification.
type eventMsg service.Event

// eventsClosedMsg is sent once the event channel is drained and closed.
type eventsClosedMsg struct{}

type startedMsg struct {
	err error
}

// writeDoneMsg reports the result of a controller write. done is the status
// line shown on success.
type writeDoneMsg struct {
	action writeAction
	done   string
	err    error

	// tag and renamed name the tag a tag write touched
	tag     string
	renamed string
}

type authDoneMsg struct {
	identity models.Identity
	err      error
}

type signedOutMsg struct {
	err error
}

type migrationDoneMsg struct {
	accepted bool
	err      error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct {
	seq int
}
