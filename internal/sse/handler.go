// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/moya-list/internal/app"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

// writeTimeout bounds a single frame write so a stuck client cannot pin the
// handler forever.
const writeTimeout = 60 * time.Second

// snapshotErrorData is the JSON payload of an `event: error` frame. Internal
// error text never reaches the client.
var snapshotErrorData, _ = json.Marshal(app.MsgInternalServerError)

// SnapshotFunc loads the current full state of topic for userID.
type SnapshotFunc func(ctx context.Context, userID int64) (any, error)

// Handler streams snapshots of one topic to the authenticated user.
type Handler struct {
	manager  *Manager
	topic    models.ChangeTopic
	snapshot SnapshotFunc
}

// NewHandler returns a handler that sends `event: <topic>` frames produced by
// snapshot. It expects the user id in the request context.
func NewHandler(manager *Manager, topic models.ChangeTopic, snapshot SnapshotFunc) *Handler {
	return &Handler{
		manager:  manager,
		topic:    topic,
		snapshot: snapshot,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	sub, err := h.manager.Subscribe(userID, h.topic)
	if err != nil {
		log.Err(err).Str("func", "sse.Handler.ServeHTTP").Msg("failed to subscribe")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	defer h.manager.Unsubscribe(sub.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()

	// the initial frame is the current state
	if err := h.sendSnapshot(ctx, w, rc, userID); err != nil {
		log.Warn().Err(err).Str("subscriber_id", sub.ID).Msg("failed to send initial snapshot")
		return
	}

	heartbeat := time.NewTicker(h.manager.HeartbeatInterval())
	defer heartbeat.Stop()

	for {
		select {
		case <-sub.Changes:
			if err := h.sendSnapshot(ctx, w, rc, userID); err != nil {
				log.Info().Err(err).Str("subscriber_id", sub.ID).Msg("stream closed during send")
				return
			}

		case <-heartbeat.C:
			if err := writeFrame(w, rc, ": ping\n\n"); err != nil {
				log.Info().Str("subscriber_id", sub.ID).Msg("stream closed during heartbeat")
				return
			}

		case <-sub.Done:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) sendSnapshot(ctx context.Context, w http.ResponseWriter, rc *http.ResponseController, userID int64) error {
	snapshot, err := h.snapshot(ctx, userID)
	if err != nil {
		// a failed read is reported to the client without dropping the stream
		logger.FromContext(ctx).Err(err).Str("func", "sse.Handler.sendSnapshot").Str("topic", string(h.topic)).Msg("failed to load snapshot")
		return writeFrame(w, rc, fmt.Sprintf("event: error\ndata: %s\n\n", snapshotErrorData))
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return writeFrame(w, rc, fmt.Sprintf("event: %s\ndata: %s\n\n", h.topic, data))
}

func writeFrame(w http.ResponseWriter, rc *http.ResponseController, frame string) error {
	// not every ResponseWriter supports deadlines; ignore that case
	_ = rc.SetWriteDeadline(time.Now().Add(writeTimeout))

	if _, err := fmt.Fprint(w, frame); err != nil {
		return err
	}
	return rc.Flush()
}
