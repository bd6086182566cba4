// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/models"
)

type changeJournal struct {
	*DB
	now func() time.Time
}

func NewChangeJournal(db *DB) ChangeJournal {
	return &changeJournal{DB: db, now: time.Now}
}

func (j *changeJournal) Append(ctx context.Context, record models.ChangeRecord) error {
	log := logger.FromContext(ctx)

	err := j.inTx(ctx, func(tx *sql.Tx) error {
		return appendChange(ctx, tx, record, j.now())
	})
	if err != nil {
		log.Err(err).
			Str("func", "changeJournal.Append").
			Str("user_id", record.UserID).
			Str("change_id", record.ID).
			Msg("failed to append change")
		return err
	}

	return nil
}

func (j *changeJournal) DrainUnsynced(ctx context.Context, userID string) ([]models.ChangeRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := j.DB.QueryContext(ctx, getPendingChanges, userID)
	if err != nil {
		log.Err(err).
			Str("func", "changeJournal.DrainUnsynced").
			Str("user_id", userID).
			Msg("failed to query pending changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	records, err := scanChanges(rows)
	if err != nil {
		log.Err(err).
			Str("func", "changeJournal.DrainUnsynced").
			Str("user_id", userID).
			Msg("failed to scan pending changes")
		return nil, err
	}

	return records, nil
}

// MarkSynced moves the given records to synced. Records already synced or
// discarded are left alone.
func (j *changeJournal) MarkSynced(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("change_journal").
		Set("status", string(models.JournalSynced)).
		Set("status_reason", nil).
		Set("status_at", j.now().UnixMicro()).
		Where(sq.Eq{
			"user_id":   userID,
			"change_id": ids,
			"status":    []string{string(models.JournalPending), string(models.JournalSuperseded)},
		}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "changeJournal.MarkSynced").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = j.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "changeJournal.MarkSynced").
			Str("user_id", userID).
			Int("count", len(ids)).
			Msg("failed to mark changes synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (j *changeJournal) PendingCount(ctx context.Context, userID string) (int, error) {
	var count int
	if err := j.DB.QueryRowContext(ctx, countPendingChanges, userID).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "changeJournal.PendingCount").
			Str("user_id", userID).
			Msg("failed to count pending changes")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

// appendChange supersedes older pending records of the row and inserts
// record. It must run inside the caller's transaction.
func appendChange(ctx context.Context, q querier, record models.ChangeRecord, now time.Time) error {
	reason := fmt.Sprintf("replaced by change %s", record.ID)
	if _, err := q.ExecContext(ctx, supersedePendingChanges,
		reason,
		now.UnixMicro(),
		record.UserID,
		record.EntityType,
		record.EntityID,
	); err != nil {
		return fmt.Errorf("%w: supersede: %w", ErrExecutingStatement, err)
	}

	if _, err := q.ExecContext(ctx, insertChange,
		record.ID,
		record.UserID,
		record.EntityType,
		record.EntityID,
		record.OwnerID,
		record.Operation,
		nullableJSON(record.Payload),
		record.LocalTimestamp.UnixMicro(),
		record.RowVersion,
		record.BaseVersion,
	); err != nil {
		return fmt.Errorf("%w: insert change: %w", ErrExecutingStatement, err)
	}

	return nil
}

// latestPendingChange returns the newest pending record of a row, or nil.
func latestPendingChange(ctx context.Context, q querier, userID string, key models.RowKey) (*models.ChangeRecord, error) {
	record, err := scanChange(q.QueryRowContext(ctx, getLatestPendingChange, userID, key.EntityType, key.EntityID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &record, nil
}

func setChangeStatus(ctx context.Context, q querier, query, reason string, now time.Time, args ...any) error {
	if _, err := q.ExecContext(ctx, query, append([]any{reason, now.UnixMicro()}, args...)...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChange(row rowScanner) (models.ChangeRecord, error) {
	var (
		record  models.ChangeRecord
		payload sql.NullString
		ts      int64
	)

	err := row.Scan(
		&record.Seq,
		&record.ID,
		&record.UserID,
		&record.EntityType,
		&record.EntityID,
		&record.OwnerID,
		&record.Operation,
		&payload,
		&ts,
		&record.RowVersion,
		&record.BaseVersion,
		&record.Status,
	)
	if err != nil {
		return models.ChangeRecord{}, err
	}

	if payload.Valid {
		record.Payload = []byte(payload.String)
	}
	record.LocalTimestamp = fromMicros(ts)

	return record, nil
}

// scanChanges reads and closes rows.
func scanChanges(rows *sql.Rows) ([]models.ChangeRecord, error) {
	defer rows.Close()

	var records []models.ChangeRecord
	for rows.Next() {
		record, err := scanChange(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func fromMicros(v int64) time.Time {
	return time.UnixMicro(v).UTC()
}

func nullableMicros(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UnixMicro()
}

func timeFromNullMicros(v sql.NullInt64) *time.Time {
	if !v.Valid || v.Int64 == 0 {
		return nil
	}
	t := fromMicros(v.Int64)
	return &t
}

func nullableJSON(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	return string(payload)
}
