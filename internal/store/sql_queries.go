package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fit-sync/models"
)

// pushLockKey serializes pushes so that sequence order equals commit order.
const pushLockKey = 727_001

const (
	acquirePushLock = `SELECT pg_advisory_xact_lock($1);`

	selectSyncRowForUpdate = `
		SELECT owner_id, fields, deleted, row_version, updated_at, modified_by, seq
		FROM sync_rows
		WHERE entity_type = $1 AND entity_id = $2
		FOR UPDATE;`

	getReceipt = `
		SELECT row_version, seq, overwrote
		FROM applied_changes
		WHERE change_id = $1;`

	nextChangeSeq = `SELECT nextval('sync_change_seq');`

	upsertSyncRow = `
		INSERT INTO sync_rows (
			entity_type,
			entity_id,
			owner_id,
			fields,
			deleted,
			row_version,
			updated_at,
			modified_by,
			seq
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			fields      = EXCLUDED.fields,
			deleted     = EXCLUDED.deleted,
			row_version = EXCLUDED.row_version,
			updated_at  = EXCLUDED.updated_at,
			modified_by = EXCLUDED.modified_by,
			seq         = EXCLUDED.seq;`

	insertReceipt = `
		INSERT INTO applied_changes (
			change_id,
			user_id,
			entity_type,
			entity_id,
			row_version,
			seq,
			overwrote
		) VALUES ($1, $2, $3, $4, $5, $6, $7);`

	pruneReceipts = `DELETE FROM applied_changes WHERE applied_at < $1;`

	getAthletesOfTrainer = `
		SELECT athlete_id
		FROM trainer_athletes
		WHERE trainer_id = $1
		ORDER BY athlete_id;`

	getRoster = `
		SELECT trainer_id, athlete_id, enrolled_at
		FROM trainer_athletes
		WHERE trainer_id = $1
		ORDER BY enrolled_at, athlete_id;`

	enrollAthlete = `
		INSERT INTO trainer_athletes (trainer_id, athlete_id, enrolled_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (trainer_id, athlete_id) DO UPDATE SET trainer_id = EXCLUDED.trainer_id
		RETURNING trainer_id, athlete_id, enrolled_at;`
)

var syncRowColumns = []string{
	"entity_type",
	"entity_id",
	"owner_id",
	"fields",
	"deleted",
	"row_version",
	"updated_at",
	"modified_by",
	"seq",
}

// buildPullQuery selects one page of rows visible to scope. It asks for
// limit+1 rows so the caller can tell whether more remain.
func buildPullQuery(scope models.Scope, cursor int64, limit int) (string, []any, error) {
	return sq.Select(syncRowColumns...).
		From("sync_rows").
		Where(sq.Gt{"seq": cursor}).
		Where(sq.Eq{"owner_id": scope.VisibleOwners()}).
		OrderBy("seq").
		Limit(uint64(limit) + 1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
