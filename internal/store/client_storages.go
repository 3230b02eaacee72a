// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
)

// ClientStorages groups the client-side stores.
type ClientStorages struct {
	// Local is the guest-mode persistence over the SQLite key-value table.
	Local LocalPersistence

	// Blobs holds guest-mode image contents until they are uploaded.
	Blobs BlobStorage

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file of
// cfg.DB.DSN, applies the local schema and prepares the blob directory.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewFileBlobStorage(cfg.BlobDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ClientStorages{
		Local: NewLocalPersistence(NewKeyValueRepository(db, logger), logger),
		Blobs: blobs,
		db:    db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
