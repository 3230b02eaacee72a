// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/MKhiriev/moya-list/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	createItem = `INSERT INTO items (id, user_id, text, categories, description, images, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, text, categories, description, images, status, created_at;`

	getItem = `SELECT id, text, categories, description, images, status, created_at
    FROM items
    WHERE user_id = $1 AND id = $2;`

	deleteItem = `DELETE FROM items
    WHERE user_id = $1 AND id = $2;`

	getSettings = `SELECT categories, tag_colors, custom_tag_order, tag_sort_order
    FROM settings
    WHERE user_id = $1;`

	// Absent patch fields arrive as NULL and keep the stored column.
	mergeSettings = `INSERT INTO settings (user_id, categories, tag_colors, custom_tag_order, tag_sort_order)
    VALUES ($1, $2, $3::jsonb, $4, $5)
    ON CONFLICT (user_id) DO UPDATE SET
        categories       = COALESCE(EXCLUDED.categories, settings.categories),
        tag_colors       = COALESCE(EXCLUDED.tag_colors, settings.tag_colors),
        custom_tag_order = COALESCE(EXCLUDED.custom_tag_order, settings.custom_tag_order),
        tag_sort_order   = COALESCE(EXCLUDED.tag_sort_order, settings.tag_sort_order),
        updated_at       = NOW()
    RETURNING categories, tag_colors, custom_tag_order, tag_sort_order;`

	addBlob = `INSERT INTO blobs (user_id, ref, content_type, size)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (user_id, ref) DO NOTHING;`

	getBlob = `SELECT ref, content_type, size
    FROM blobs
    WHERE user_id = $1 AND ref = $2;`
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	itemColumns = []string{"id", "text", "categories", "description", "images", "status", "created_at"}
)

// buildListItemsQuery selects every item of the user, newest first. The id
// tiebreaker keeps the order stable for equal timestamps.
func buildListItemsQuery(userID int64) (string, []any, error) {
	query, args, err := psql.
		Select(itemColumns...).
		From("items").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateItemQuery builds an UPDATE touching only the non-nil fields of
// update. The stored row is returned.
func buildUpdateItemQuery(userID int64, id string, update models.ItemUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("items")

	if update.Text != nil {
		builder = builder.Set("text", *update.Text)
	}
	if update.Categories != nil {
		builder = builder.Set("categories", pq.StringArray(*update.Categories))
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Images != nil {
		builder = builder.Set("images", imageArray(*update.Images))
	}
	if update.Status != nil {
		builder = builder.Set("status", string(*update.Status))
	}

	query, args, err := builder.
		Where(sq.Eq{"user_id": userID, "id": id}).
		Suffix("RETURNING " + strings.Join(itemColumns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func imageArray(images []models.ImageRef) pq.StringArray {
	out := make(pq.StringArray, len(images))
	for i, ref := range images {
		out[i] = string(ref)
	}
	return out
}

func imageRefs(images pq.StringArray) []models.ImageRef {
	if len(images) == 0 {
		return nil
	}
	out := make([]models.ImageRef, len(images))
	for i, ref := range images {
		out[i] = models.ImageRef(ref)
	}
	return out
}
