// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	UserRepository     UserRepository
	ItemRepository     ItemRepository
	SettingsRepository SettingsRepository
	BlobRepository     BlobRepository
	BlobStorage        BlobStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations, prepares the blob
// directory and wires every repository.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewFileBlobStorage(cfg.Files.BlobDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, logger),
		ItemRepository:     NewItemRepository(db, logger),
		SettingsRepository: NewSettingsRepository(db, logger),
		BlobRepository:     NewBlobRepository(db, logger),
		BlobStorage:        blobs,
		db:                 db,
	}, nil
}

// Ping reports whether the database answers. Used by the health service.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
