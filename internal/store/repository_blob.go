// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

type blobRepository struct {
	*DB
	logger *logger.Logger
}

// NewBlobRepository constructs a [BlobRepository] backed by db.
func NewBlobRepository(db *DB, logger *logger.Logger) BlobRepository {
	return &blobRepository{
		DB:     db,
		logger: logger,
	}
}

// AddBlob records ownership. Adding the same blob twice is not an error.
func (b *blobRepository) AddBlob(ctx context.Context, userID int64, blob models.BlobInfo) error {
	err := b.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := b.ExecContext(ctx, addBlob, userID, string(blob.Ref), blob.ContentType, blob.Size)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "blobRepository.AddBlob").
			Int64("user_id", userID).
			Str("ref", string(blob.Ref)).
			Msg("failed to record blob")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (b *blobRepository) GetBlob(ctx context.Context, userID int64, ref models.ImageRef) (models.BlobInfo, error) {
	var (
		info   models.BlobInfo
		rawRef string
	)
	err := b.withRetry(ctx, func(ctx context.Context) error {
		return b.QueryRowContext(ctx, getBlob, userID, string(ref)).Scan(&rawRef, &info.ContentType, &info.Size)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.BlobInfo{}, ErrBlobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "blobRepository.GetBlob").
			Int64("user_id", userID).
			Str("ref", string(ref)).
			Msg("failed to read blob")
		return models.BlobInfo{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	info.Ref = models.ImageRef(rawRef)
	return info, nil
}
