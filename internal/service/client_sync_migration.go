// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/models"
)

// ResolveMigration answers the open migration prompt. Declining discards the
// guest items. Accepting imports every guest item into the account; only
// when all of them made it are the local items cleared and the migration
// marked done. On partial failure a *MigrationError lists the failed ids and
// the prompt stays open for a retry.
func (c *SyncController) ResolveMigration(ctx context.Context, accept bool) error {
	c.mu.Lock()
	if c.state != StateAuthenticated || len(c.prompt) == 0 || c.migrating {
		c.mu.Unlock()
		return ErrNoMigrationPending
	}
	guestItems := slices.Clone(c.prompt)
	generation := c.generation
	c.migrating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.migrating = false
		c.mu.Unlock()
	}()

	imported := 0
	if accept {
		if err := c.importItems(ctx, guestItems); err != nil {
			c.logger.Err(err).Str("func", "SyncController.ResolveMigration").Msg("guest item import failed")
			c.emit(Event{Kind: EventError, Err: err})
			return err
		}
		imported = len(guestItems)
	}

	if err := c.local.ClearItems(ctx); err != nil {
		c.logger.Err(err).Str("func", "SyncController.ResolveMigration").Msg("clearing guest items failed")
		return fmt.Errorf("clearing guest items failed: %w", err)
	}
	if err := c.local.SetMigrationDone(ctx, true); err != nil {
		c.logger.Err(err).Str("func", "SyncController.ResolveMigration").Msg("setting migration flag failed")
		return fmt.Errorf("setting migration flag failed: %w", err)
	}

	c.mu.Lock()
	if c.generation == generation {
		c.prompt = nil
	}
	c.mu.Unlock()

	c.logger.Info().Bool("accepted", accept).Int("imported", imported).Msg("guest migration resolved")
	c.emit(Event{Kind: EventMigrationDone, Count: imported})
	return nil
}

// importItems creates every guest item remotely with bounded concurrency.
func (c *SyncController) importItems(ctx context.Context, guestItems []models.Item) error {
	var (
		mu       sync.Mutex
		failed   []string
		firstErr error
	)

	g := new(errgroup.Group)
	g.SetLimit(c.migrationConcurrency)
	for _, item := range guestItems {
		g.Go(func() error {
			if err := c.importItem(ctx, item); err != nil {
				mu.Lock()
				failed = append(failed, item.ID)
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) == 0 {
		return nil
	}
	slices.Sort(failed)
	return &MigrationError{Failed: failed, Err: firstErr}
}

// importItem uploads the item's local images and creates it in the account.
// The server assigns CreatedAt. An item that already exists there counts as
// imported, so a retried migration does not duplicate anything.
func (c *SyncController) importItem(ctx context.Context, item models.Item) error {
	remote := c.backend.remote

	images := make([]models.ImageRef, 0, len(item.Images))
	for _, ref := range item.Images {
		data, err := c.readLocalBlob(ctx, ref)
		if errors.Is(err, store.ErrBlobNotFound) || errors.Is(err, store.ErrInvalidBlobRef) {
			c.logger.Warn().Str("func", "SyncController.importItem").Str("ref", string(ref)).Msg("skipping missing guest image")
			continue
		}
		if err != nil {
			return err
		}

		uploaded, err := remote.UploadImage(ctx, data)
		if err != nil {
			return fmt.Errorf("image upload failed: %w", err)
		}
		images = append(images, uploaded)
	}

	draft := item.Clone()
	draft.Images = images
	draft.CreatedAt = time.Time{}
	if _, err := uuid.Parse(draft.ID); err != nil {
		draft.ID = ""
	}

	if _, err := remote.CreateItem(ctx, draft); err != nil {
		if errors.Is(err, ErrItemConflict) {
			return nil
		}
		return err
	}
	return nil
}

func (c *SyncController) readLocalBlob(ctx context.Context, ref models.ImageRef) ([]byte, error) {
	rc, err := c.blobs.OpenBlob(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading guest image failed: %w", err)
	}
	return data, nil
}
