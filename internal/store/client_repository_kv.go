// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/moya-list/internal/logger"
)

// keyValueRepository is the SQLite-backed [KeyValueRepository] over the
// "local_storage" table.
type keyValueRepository struct {
	*DB
	logger *logger.Logger
}

// NewKeyValueRepository constructs a [KeyValueRepository] backed by db.
func NewKeyValueRepository(db *DB, logger *logger.Logger) KeyValueRepository {
	return &keyValueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.QueryRowContext(ctx, getLocalValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "keyValueRepository.Get").Str("key", key).Msg("failed to read local value")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.ExecContext(ctx, setLocalValue, key, value); err != nil {
		r.logger.Err(err).Str("func", "keyValueRepository.Set").Str("key", key).Msg("failed to write local value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Delete runs in one transaction so a multi-key clear is all or nothing.
func (r *keyValueRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "keyValueRepository.Delete").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, deleteLocalValue, key); err != nil {
			r.logger.Err(err).Str("func", "keyValueRepository.Delete").Str("key", key).Msg("failed to delete local value")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "keyValueRepository.Delete").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
