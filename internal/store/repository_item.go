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
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// itemRepository is the PostgreSQL-backed implementation of
// [ItemRepository] over the "items" table.
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads the columns of itemColumns into an Item.
func scanItem(row rowScanner) (models.Item, error) {
	var (
		item       models.Item
		categories pq.StringArray
		images     pq.StringArray
		status     string
	)

	err := row.Scan(&item.ID, &item.Text, &categories, &item.Description, &images, &status, &item.CreatedAt)
	if err != nil {
		return models.Item{}, err
	}

	item.Categories = []string(categories)
	item.Images = imageRefs(images)
	item.Status = models.ItemStatus(status)

	return models.NormalizeItem(item), nil
}

func (p *itemRepository) CreateItem(ctx context.Context, userID int64, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	var created models.Item
	err := p.withRetry(ctx, func(ctx context.Context) error {
		row := p.QueryRowContext(ctx, createItem,
			item.ID,
			userID,
			item.Text,
			pq.StringArray(item.Categories),
			item.Description,
			imageArray(item.Images),
			string(item.Status),
		)

		var scanErr error
		created, scanErr = scanItem(row)
		return scanErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.CreateItem").
			Int64("user_id", userID).
			Str("item_id", item.ID).
			Msg("failed to insert item")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Item{}, ErrItemAlreadyExists
		}
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (p *itemRepository) ListItems(ctx context.Context, userID int64) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListItemsQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.ListItems").Msg("failed to build query")
		return nil, err
	}

	var items []models.Item
	err = p.withRetry(ctx, func(ctx context.Context) error {
		rows, queryErr := p.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		items = make([]models.Item, 0, 32)
		for rows.Next() {
			item, scanErr := scanItem(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			items = append(items, item)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.ListItems").
			Int64("user_id", userID).
			Msg("failed to list items")
		return nil, err
	}

	return items, nil
}

func (p *itemRepository) GetItem(ctx context.Context, userID int64, id string) (models.Item, error) {
	log := logger.FromContext(ctx)

	var item models.Item
	err := p.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		item, scanErr = scanItem(p.QueryRowContext(ctx, getItem, userID, id))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.GetItem").
			Int64("user_id", userID).
			Str("item_id", id).
			Msg("failed to get item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

func (p *itemRepository) UpdateItem(ctx context.Context, userID int64, id string, update models.ItemUpdate) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateItemQuery(userID, id, update)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Int64("user_id", userID).
			Str("item_id", id).
			Msg("failed to build update query")
		return models.Item{}, err
	}

	var item models.Item
	err = p.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		item, scanErr = scanItem(p.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Int64("user_id", userID).
			Str("item_id", id).
			Msg("failed to update item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

func (p *itemRepository) DeleteItem(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := p.withRetry(ctx, func(ctx context.Context) error {
		res, execErr := p.ExecContext(ctx, deleteItem, userID, id)
		if execErr != nil {
			return execErr
		}
		var rowsErr error
		affected, rowsErr = res.RowsAffected()
		return rowsErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Int64("user_id", userID).
			Str("item_id", id).
			Msg("failed to delete item")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
