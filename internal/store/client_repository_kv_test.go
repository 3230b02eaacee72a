// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVRepo(t *testing.T) (*keyValueRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &keyValueRepository{DB: db, logger: db.logger}, mock
}

func TestKeyValue_Get(t *testing.T) {
	repo, mock := newTestKVRepo(t)

	mock.ExpectQuery("SELECT value FROM local_storage").
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))

	value, ok, err := repo.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestKeyValue_GetMissing(t *testing.T) {
	repo, mock := newTestKVRepo(t)

	mock.ExpectQuery("SELECT value FROM local_storage").
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := repo.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyValue_Set(t *testing.T) {
	repo, mock := newTestKVRepo(t)

	mock.ExpectExec("INSERT INTO local_storage").
		WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), "k", "v"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValue_DeleteIsTransactional(t *testing.T) {
	repo, mock := newTestKVRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM local_storage").WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM local_storage").WithArgs("b").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "a", "b")

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValue_DeleteCommits(t *testing.T) {
	repo, mock := newTestKVRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM local_storage").WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "a"))
	require.NoError(t, repo.Delete(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
