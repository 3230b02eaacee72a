// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sse

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(sub *Subscriber) bool {
	select {
	case <-sub.Changes:
		return true
	default:
		return false
	}
}

func TestManager_NotifyFiltersByUserAndTopic(t *testing.T) {
	m := NewManager(time.Second, logger.Nop())

	items1, err := m.Subscribe(1, models.TopicItems)
	require.NoError(t, err)
	settings1, err := m.Subscribe(1, models.TopicSettings)
	require.NoError(t, err)
	items2, err := m.Subscribe(2, models.TopicItems)
	require.NoError(t, err)

	m.Notify(1, models.TopicItems)

	assert.True(t, pending(items1))
	assert.False(t, pending(settings1))
	assert.False(t, pending(items2))
}

func TestManager_NotificationsCoalesce(t *testing.T) {
	m := NewManager(time.Second, logger.Nop())
	sub, err := m.Subscribe(1, models.TopicItems)
	require.NoError(t, err)

	m.Notify(1, models.TopicItems)
	m.Notify(1, models.TopicItems)
	m.Notify(1, models.TopicItems)

	assert.True(t, pending(sub))
	assert.False(t, pending(sub), "three notifications must collapse into one")
}

func TestManager_UnsubscribeClosesDone(t *testing.T) {
	m := NewManager(time.Second, logger.Nop())

	var deltas []int
	m.OnCountChange(func(_ models.ChangeTopic, delta int) { deltas = append(deltas, delta) })

	sub, err := m.Subscribe(1, models.TopicItems)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())

	m.Unsubscribe(sub.ID)
	m.Unsubscribe(sub.ID)

	assert.Equal(t, 0, m.Count())
	assert.Equal(t, []int{1, -1}, deltas)

	select {
	case <-sub.Done:
	default:
		t.Fatal("Done must be closed after Unsubscribe")
	}

	// no panic on a removed subscriber
	m.Notify(1, models.TopicItems)
}

func TestManager_Shutdown(t *testing.T) {
	m := NewManager(0, logger.Nop())
	assert.Equal(t, defaultHeartbeatInterval, m.HeartbeatInterval())

	sub, err := m.Subscribe(1, models.TopicItems)
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(context.Background()))

	select {
	case <-sub.Done:
	default:
		t.Fatal("Done must be closed after Shutdown")
	}

	_, err = m.Subscribe(1, models.TopicItems)
	assert.ErrorIs(t, err, ErrManagerClosed)

	// a late Unsubscribe from the handler is a no-op
	m.Unsubscribe(sub.ID)
}

func TestManager_UniqueIDs(t *testing.T) {
	m := NewManager(time.Second, logger.Nop())

	a, err := m.Subscribe(1, models.TopicItems)
	require.NoError(t, err)
	b, err := m.Subscribe(1, models.TopicItems)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 21)
}
