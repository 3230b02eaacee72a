// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestWithRetry_NoClassifierRunsOnce(t *testing.T) {
	db, _ := newTestDB(t)

	calls := 0
	err := db.withRetry(context.Background(), func(context.Context) error {
		calls++
		return pgError(pgerrcode.SerializationFailure)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesTransient(t *testing.T) {
	db, _ := newTestDB(t)
	db.errorClassificator = NewPostgresErrorClassifier()

	calls := 0
	err := db.withRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return pgError(pgerrcode.DeadlockDetected)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_GivesUp(t *testing.T) {
	db, _ := newTestDB(t)
	db.errorClassificator = NewPostgresErrorClassifier()

	calls := 0
	err := db.withRetry(context.Background(), func(context.Context) error {
		calls++
		return pgError(pgerrcode.SerializationFailure)
	})

	assert.Error(t, err)
	assert.Equal(t, retryMaxRetries+1, calls)
}

func TestWithRetry_PermanentErrorNotRetried(t *testing.T) {
	db, _ := newTestDB(t)
	db.errorClassificator = NewPostgresErrorClassifier()

	calls := 0
	permanent := pgError(pgerrcode.UniqueViolation)
	err := db.withRetry(context.Background(), func(context.Context) error {
		calls++
		return permanent
	})

	assert.True(t, errors.Is(err, permanent))
	assert.Equal(t, 1, calls)
}
