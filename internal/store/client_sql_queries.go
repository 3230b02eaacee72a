// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getLocalValue = `SELECT value FROM local_storage WHERE key = ?;`

	setLocalValue = `INSERT INTO local_storage (key, value, updated_at)
    VALUES (?, ?, CURRENT_TIMESTAMP)
    ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

	deleteLocalValue = `DELETE FROM local_storage WHERE key = ?;`
)
