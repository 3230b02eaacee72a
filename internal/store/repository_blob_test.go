// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/moya-list/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlobRepo(t *testing.T) (*blobRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &blobRepository{DB: db, logger: db.logger}, mock
}

func TestAddBlob(t *testing.T) {
	repo, mock := newTestBlobRepo(t)

	mock.ExpectExec("INSERT INTO blobs").
		WithArgs(int64(1), "abc", "image/png", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddBlob(context.Background(), 1, models.BlobInfo{Ref: "abc", ContentType: "image/png", Size: 10})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBlob_Error(t *testing.T) {
	repo, mock := newTestBlobRepo(t)

	mock.ExpectExec("INSERT INTO blobs").WillReturnError(errors.New("down"))

	err := repo.AddBlob(context.Background(), 1, models.BlobInfo{Ref: "abc"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetBlob(t *testing.T) {
	repo, mock := newTestBlobRepo(t)

	mock.ExpectQuery("FROM blobs").
		WithArgs(int64(1), "abc").
		WillReturnRows(sqlmock.NewRows([]string{"ref", "content_type", "size"}).AddRow("abc", "image/jpeg", 42))

	info, err := repo.GetBlob(context.Background(), 1, "abc")

	require.NoError(t, err)
	assert.Equal(t, models.BlobInfo{Ref: "abc", ContentType: "image/jpeg", Size: 42}, info)
}

func TestGetBlob_OtherOwner(t *testing.T) {
	repo, mock := newTestBlobRepo(t)

	mock.ExpectQuery("FROM blobs").
		WithArgs(int64(2), "abc").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBlob(context.Background(), 2, "abc")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
