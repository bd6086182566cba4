// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Local rows. Timestamps are stored as Unix microseconds.
const (
	getLocalRow = `
		SELECT
			owner_id,
			fields,
			deleted,
			updated_at,
			server_version,
			confirmed_fields,
			confirmed_deleted,
			confirmed_at,
			dirty
		FROM local_rows
		WHERE user_id = ? AND entity_type = ? AND entity_id = ?;`

	listLocalRows = `
		SELECT
			entity_id,
			owner_id,
			fields,
			deleted,
			updated_at,
			server_version,
			confirmed_fields,
			confirmed_deleted,
			confirmed_at,
			dirty
		FROM local_rows
		WHERE user_id = ? AND entity_type = ? AND deleted = 0
		ORDER BY entity_id;`

	upsertLocalWrite = `
		INSERT INTO local_rows (
			user_id,
			entity_type,
			entity_id,
			owner_id,
			fields,
			deleted,
			updated_at,
			dirty
		) VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT (user_id, entity_type, entity_id) DO UPDATE SET
			owner_id   = excluded.owner_id,
			fields     = excluded.fields,
			deleted    = excluded.deleted,
			updated_at = excluded.updated_at,
			dirty      = 1;`

	upsertRemoteRow = `
		INSERT INTO local_rows (
			user_id,
			entity_type,
			entity_id,
			owner_id,
			fields,
			deleted,
			updated_at,
			server_version,
			confirmed_fields,
			confirmed_deleted,
			confirmed_at,
			dirty
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT (user_id, entity_type, entity_id) DO UPDATE SET
			owner_id          = excluded.owner_id,
			fields            = excluded.fields,
			deleted           = excluded.deleted,
			updated_at        = excluded.updated_at,
			server_version    = excluded.server_version,
			confirmed_fields  = excluded.confirmed_fields,
			confirmed_deleted = excluded.confirmed_deleted,
			confirmed_at      = excluded.confirmed_at,
			dirty             = 0;`

	confirmLocalRow = `
		UPDATE local_rows SET
			server_version    = ?,
			confirmed_fields  = ?,
			confirmed_deleted = ?,
			confirmed_at      = ?,
			dirty             = EXISTS (
				SELECT 1 FROM change_journal j
				WHERE j.user_id = local_rows.user_id
				  AND j.entity_type = local_rows.entity_type
				  AND j.entity_id = local_rows.entity_id
				  AND j.status = 'pending'
			)
		WHERE user_id = ? AND entity_type = ? AND entity_id = ? AND server_version < ?;`

	revertLocalRow = `
		UPDATE local_rows SET
			fields     = confirmed_fields,
			deleted    = confirmed_deleted,
			updated_at = confirmed_at,
			dirty      = 0
		WHERE user_id = ? AND entity_type = ? AND entity_id = ?;`

	deleteLocalRow = `
		DELETE FROM local_rows
		WHERE user_id = ? AND entity_type = ? AND entity_id = ?;`
)

// Change journal.
const (
	insertChange = `
		INSERT INTO change_journal (
			change_id,
			user_id,
			entity_type,
			entity_id,
			owner_id,
			operation,
			payload,
			local_timestamp,
			row_version,
			base_version,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending');`

	supersedePendingChanges = `
		UPDATE change_journal SET
			status        = 'superseded',
			status_reason = ?,
			status_at     = ?
		WHERE user_id = ? AND entity_type = ? AND entity_id = ? AND status = 'pending';`

	discardPendingChanges = `
		UPDATE change_journal SET
			status        = 'discarded',
			status_reason = ?,
			status_at     = ?
		WHERE user_id = ? AND entity_type = ? AND entity_id = ? AND status = 'pending';`

	discardChange = `
		UPDATE change_journal SET
			status        = 'discarded',
			status_reason = ?,
			status_at     = ?
		WHERE user_id = ? AND change_id = ? AND status = 'pending';`

	markChangeSynced = `
		UPDATE change_journal SET
			status        = 'synced',
			status_reason = NULL,
			status_at     = ?
		WHERE user_id = ? AND change_id = ? AND status IN ('pending', 'superseded');`

	selectChangeColumns = `
		SELECT
			seq,
			change_id,
			user_id,
			entity_type,
			entity_id,
			owner_id,
			operation,
			payload,
			local_timestamp,
			row_version,
			base_version,
			status
		FROM change_journal`

	getPendingChanges = selectChangeColumns + `
		WHERE user_id = ? AND status = 'pending'
		ORDER BY seq;`

	getPendingChangesByType = selectChangeColumns + `
		WHERE user_id = ? AND entity_type = ? AND status = 'pending'
		ORDER BY seq;`

	getLatestPendingChange = selectChangeColumns + `
		WHERE user_id = ? AND entity_type = ? AND entity_id = ? AND status = 'pending'
		ORDER BY seq DESC
		LIMIT 1;`

	countPendingChanges = `
		SELECT COUNT(*) FROM change_journal
		WHERE user_id = ? AND status = 'pending';`

	getLastLocalTimestamp = `
		SELECT COALESCE(MAX(local_timestamp), 0) FROM change_journal
		WHERE user_id = ?;`
)

// Sync metadata.
const (
	getCheckpoint = `
		SELECT cursor, last_pulled_at, last_pushed_at
		FROM sync_checkpoints
		WHERE user_id = ?;`

	// MAX keeps every column monotonic. NULL is stored as 0 and read back
	// as unset.
	advanceCheckpoint = `
		INSERT INTO sync_checkpoints (user_id, cursor, last_pulled_at, last_pushed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			cursor         = MAX(sync_checkpoints.cursor, excluded.cursor),
			last_pulled_at = MAX(COALESCE(sync_checkpoints.last_pulled_at, 0), COALESCE(excluded.last_pulled_at, 0)),
			last_pushed_at = MAX(COALESCE(sync_checkpoints.last_pushed_at, 0), COALESCE(excluded.last_pushed_at, 0));`

	acquireSyncLock = `
		INSERT INTO sync_locks (user_id, owner_id, acquired_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			owner_id    = excluded.owner_id,
			acquired_at = excluded.acquired_at,
			expires_at  = excluded.expires_at
		WHERE sync_locks.expires_at <= excluded.acquired_at;`

	releaseSyncLock = `
		DELETE FROM sync_locks
		WHERE user_id = ? AND owner_id = ?;`

	getSyncStatus = `
		SELECT status, last_sync_at, last_error, total_synced
		FROM sync_status
		WHERE id = 1;`

	saveSyncStatus = `
		INSERT INTO sync_status (id, status, last_sync_at, last_error, total_synced)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status       = excluded.status,
			last_sync_at = excluded.last_sync_at,
			last_error   = excluded.last_error,
			total_synced = excluded.total_synced;`
)
