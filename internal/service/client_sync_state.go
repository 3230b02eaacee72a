// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/moya-list/models"

// SyncState is the state of the SyncController.
type SyncState int

const (
	// StateUninitialized is the state before Start.
	StateUninitialized SyncState = iota
	// StateGuest reads and writes local persistence only.
	StateGuest
	// StateAuthPending waits for the stored session to resolve. Captures are
	// queued, other writes are rejected with ErrSessionPending.
	StateAuthPending
	// StateAuthenticated writes to the remote store and renders its
	// snapshots.
	StateAuthenticated
)

func (s SyncState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateGuest:
		return "guest"
	case StateAuthPending:
		return "auth-pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Backend is either Configured, carrying the remote store and auth gateway,
// or Unconfigured, in which case the controller stays in StateGuest.
type Backend struct {
	remote RemoteStore
	auth   AuthGateway
}

func Configured(remote RemoteStore, auth AuthGateway) Backend {
	return Backend{remote: remote, auth: auth}
}

func Unconfigured() Backend {
	return Backend{}
}

func (b Backend) IsConfigured() bool {
	return b.remote != nil && b.auth != nil
}

// EventKind tells the UI what to re-read.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventItemsChanged
	EventSettingsChanged
	// EventMigrationPrompt asks the user whether Count guest items should be
	// imported; answer with ResolveMigration.
	EventMigrationPrompt
	// EventMigrationDone reports Count imported items (0 when declined).
	EventMigrationDone
	// EventError carries a failure the user has to see, such as a dropped
	// snapshot stream or a failed queued capture.
	EventError
)

// Event is a notification from the SyncController.
type Event struct {
	Kind  EventKind
	State SyncState
	Count int
	Err   error
}

type inputKind int

const (
	inputStart inputKind = iota
	inputIdentity
)

// input drives the state machine.
type input struct {
	kind       inputKind
	configured bool
	identity   *models.Identity
}

// followUp is the work a transition leaves for after the lock is released.
type followUp struct {
	unsubscribe []Subscription
	subscribe   bool
	generation  uint64
	captures    []models.Capture
	events      []Event
}
