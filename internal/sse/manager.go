// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sse

import (
	"context"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

// Subscriber is one open stream.
type Subscriber struct {
	ID          string
	UserID      int64
	Topic       models.ChangeTopic
	ConnectedAt time.Time

	// Changes has capacity one. A pending signal already guarantees a fresh
	// re-read, so further notifications are dropped until it is consumed.
	Changes chan struct{}

	// Done is closed when the manager drops the subscriber.
	Done chan struct{}
}

// Manager is the per-user subscriber registry.
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	closed      bool

	heartbeatInterval time.Duration
	onCountChange     func(topic models.ChangeTopic, delta int)

	logger *logger.Logger
}

const defaultHeartbeatInterval = 30 * time.Second

// NewManager creates a manager whose streams send a heartbeat comment every
// heartbeatInterval. A non-positive interval selects 30s.
func NewManager(heartbeatInterval time.Duration, logger *logger.Logger) *Manager {
	if heartbeatInterval <= 0 {
		heartbeatInterval = defaultHeartbeatInterval
	}
	return &Manager{
		subscribers:       make(map[string]*Subscriber),
		heartbeatInterval: heartbeatInterval,
		logger:            logger,
	}
}

// OnCountChange registers a hook called on every subscribe and unsubscribe.
// The server uses it to drive the subscribers gauge. Must be called before
// the first Subscribe.
func (m *Manager) OnCountChange(fn func(topic models.ChangeTopic, delta int)) {
	m.onCountChange = fn
}

// HeartbeatInterval is the keep-alive period of every stream.
func (m *Manager) HeartbeatInterval() time.Duration {
	return m.heartbeatInterval
}

// Subscribe registers a stream for userID on topic.
func (m *Manager) Subscribe(userID int64, topic models.ChangeTopic) (*Subscriber, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("error generating subscriber id: %w", err)
	}

	sub := &Subscriber{
		ID:          id,
		UserID:      userID,
		Topic:       topic,
		ConnectedAt: time.Now(),
		Changes:     make(chan struct{}, 1),
		Done:        make(chan struct{}),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	m.subscribers[id] = sub
	total := len(m.subscribers)
	m.mu.Unlock()

	if m.onCountChange != nil {
		m.onCountChange(topic, 1)
	}

	m.logger.Info().
		Str("subscriber_id", id).
		Int64("user_id", userID).
		Str("topic", string(topic)).
		Int("total", total).
		Msg("stream subscriber connected")

	return sub, nil
}

// Unsubscribe removes the subscriber. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id string) {
	m.mu.Lock()
	sub, ok := m.subscribers[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.subscribers, id)
	total := len(m.subscribers)
	m.mu.Unlock()

	close(sub.Done)

	if m.onCountChange != nil {
		m.onCountChange(sub.Topic, -1)
	}

	m.logger.Info().
		Str("subscriber_id", id).
		Dur("duration", time.Since(sub.ConnectedAt)).
		Int("total", total).
		Msg("stream subscriber disconnected")
}

// Notify signals every stream of userID on topic. It never blocks.
func (m *Manager) Notify(userID int64, topic models.ChangeTopic) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for _, sub := range m.subscribers {
		if sub.UserID != userID || sub.Topic != topic {
			continue
		}
		select {
		case sub.Changes <- struct{}{}:
			delivered++
		default:
			// already pending
		}
	}

	m.logger.Debug().
		Int64("user_id", userID).
		Str("topic", string(topic)).
		Int("delivered", delivered).
		Msg("change notified")
}

// Count returns the number of open streams.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Shutdown closes every stream and rejects new subscribers.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	subs := m.subscribers
	m.subscribers = make(map[string]*Subscriber)
	m.mu.Unlock()

	for _, sub := range subs {
		close(sub.Done)
		if m.onCountChange != nil {
			m.onCountChange(sub.Topic, -1)
		}
	}

	m.logger.Info().Int("closed", len(subs)).Msg("all stream subscribers disconnected")

	return ctx.Err()
}
