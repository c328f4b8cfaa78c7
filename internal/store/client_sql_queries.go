// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveRecord = `
		INSERT INTO local_records (
			user_id,
			category,
			category_id,
			payload,
			deleted,
			dirty,
			sync_version,
			device_id,
			last_modified_at,
			last_synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, category, category_id) DO UPDATE SET
			payload          = excluded.payload,
			deleted          = excluded.deleted,
			dirty            = excluded.dirty,
			sync_version     = excluded.sync_version,
			device_id        = excluded.device_id,
			last_modified_at = excluded.last_modified_at,
			last_synced_at   = excluded.last_synced_at;`

	getSingleRecord = `
		SELECT
			user_id,
			category,
			category_id,
			payload,
			deleted,
			dirty,
			sync_version,
			device_id,
			last_modified_at,
			last_synced_at
		FROM local_records
		WHERE user_id = $1 AND category = $2 AND category_id = $3;`

	getAllRecords = `
		SELECT
			user_id,
			category,
			category_id,
			payload,
			deleted,
			dirty,
			sync_version,
			device_id,
			last_modified_at,
			last_synced_at
		FROM local_records
		WHERE user_id = $1 AND deleted = 0;`

	getRecordsByCategory = `
		SELECT
			user_id,
			category,
			category_id,
			payload,
			deleted,
			dirty,
			sync_version,
			device_id,
			last_modified_at,
			last_synced_at
		FROM local_records
		WHERE user_id = $1 AND category = $2 AND deleted = 0;`

	getDirtyRecords = `
		SELECT
			user_id,
			category,
			category_id,
			payload,
			deleted,
			dirty,
			sync_version,
			device_id,
			last_modified_at,
			last_synced_at
		FROM local_records
		WHERE user_id = $1 AND dirty = 1;`

	markRecordSynced = `
		UPDATE local_records SET
			dirty          = 0,
			last_synced_at = $1
		WHERE user_id = $2 AND category = $3 AND category_id = $4;`

	softDeleteRecord = `
		UPDATE local_records SET
			deleted          = 1,
			dirty            = 1,
			last_modified_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND category = $2 AND category_id = $3;`

	purgeUserRecords = `
		DELETE FROM local_records
		WHERE user_id = $1;`

	getStateValue = `
		SELECT value
		FROM kv_state
		WHERE key = $1;`

	setStateValue = `
		INSERT INTO kv_state (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	deleteStateValue = `
		DELETE FROM kv_state
		WHERE key = $1;`

	saveConflict = `
		INSERT INTO conflict_audit (
			id,
			user_id,
			category,
			category_id,
			local_modified_at,
			remote_modified_at,
			winner,
			strategy,
			detected_at,
			pending
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	getPendingConflicts = `
		SELECT
			id,
			user_id,
			category,
			category_id,
			local_modified_at,
			remote_modified_at,
			winner,
			strategy,
			detected_at,
			pending
		FROM conflict_audit
		WHERE user_id = $1 AND pending = 1
		ORDER BY detected_at;`

	getAllConflicts = `
		SELECT
			id,
			user_id,
			category,
			category_id,
			local_modified_at,
			remote_modified_at,
			winner,
			strategy,
			detected_at,
			pending
		FROM conflict_audit
		WHERE user_id = $1
		ORDER BY detected_at;`

	resolveConflict = `
		UPDATE conflict_audit SET
			pending = 0,
			winner  = $1
		WHERE id = $2 AND pending = 1;`
)
