// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/models"
)

const pushAttempts = 3

type syncRowRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncRowRepository(db *DB, logger *logger.Logger) SyncRowRepository {
	return &syncRowRepository{
		DB:     db,
		logger: logger,
	}
}

// ApplyPush applies records under a transaction-level advisory lock. The
// transaction is retried when it fails with a retryable Postgres error.
//
// Per record, in order: scope check, replay of an applied change id,
// version match, then last-writer-wins on the logical timestamp. A
// strictly newer record overwrites a newer server version; otherwise the
// record is answered with a stale conflict carrying the server row.
func (s *syncRowRepository) ApplyPush(ctx context.Context, scope models.Scope, records []models.ChangeRecord, authorizer WriteAuthorizer) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	var resp models.PushResponse
	err := s.retryTx(ctx, pushAttempts, func(tx *sql.Tx) error {
		resp = models.PushResponse{
			Accepted:  make([]models.AcceptedChange, 0, len(records)),
			Conflicts: make([]models.Conflict, 0),
		}

		if _, err := tx.ExecContext(ctx, acquirePushLock, pushLockKey); err != nil {
			return fmt.Errorf("%w: advisory lock: %w", ErrExecutingStatement, err)
		}

		for _, record := range records {
			accepted, conflict, err := s.applyRecord(ctx, tx, scope, record, authorizer)
			if err != nil {
				return err
			}
			if conflict != nil {
				resp.Conflicts = append(resp.Conflicts, *conflict)
				continue
			}
			resp.Accepted = append(resp.Accepted, accepted)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncRowRepository.ApplyPush").
			Str("user_id", scope.UserID).
			Int("records", len(records)).
			Msg("failed to apply push")
		return models.PushResponse{}, err
	}

	return resp, nil
}

func (s *syncRowRepository) applyRecord(ctx context.Context, tx *sql.Tx, scope models.Scope, record models.ChangeRecord, authorizer WriteAuthorizer) (models.AcceptedChange, *models.Conflict, error) {
	accepted := models.AcceptedChange{
		ChangeID:   record.ID,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
	}

	current, found, err := getSyncRowForUpdate(ctx, tx, record.Key())
	if err != nil {
		return accepted, nil, err
	}

	if !authorizer.CanWrite(scope, record.EntityType, record.OwnerID) {
		return accepted, newConflict(record, models.ConflictScope,
			fmt.Sprintf("%s may not write %s owned by %s", scope.Role, record.EntityType, record.OwnerID), nil), nil
	}
	if found && current.OwnerID != record.OwnerID {
		return accepted, newConflict(record, models.ConflictScope,
			fmt.Sprintf("%s is owned by %s", record.Key(), current.OwnerID), nil), nil
	}

	var (
		receiptVersion, receiptSeq int64
		receiptOverwrote           bool
	)
	err = tx.QueryRowContext(ctx, getReceipt, record.ID).Scan(&receiptVersion, &receiptSeq, &receiptOverwrote)
	switch {
	case err == nil:
		accepted.RowVersion = receiptVersion
		accepted.Seq = receiptSeq
		accepted.Overwrote = receiptOverwrote
		accepted.Replayed = true
		return accepted, nil, nil
	case !errors.Is(err, sql.ErrNoRows):
		return accepted, nil, fmt.Errorf("%w: receipt: %w", ErrScanningRow, err)
	}

	overwrote := false
	if found && current.RowVersion != record.BaseVersion {
		if !record.LocalTimestamp.After(current.UpdatedAt) {
			row := current
			return accepted, newConflict(record, models.ConflictStale,
				fmt.Sprintf("server has version %d, change is based on %d", current.RowVersion, record.BaseVersion), &row), nil
		}
		overwrote = true
	}

	var seq int64
	if err = tx.QueryRowContext(ctx, nextChangeSeq).Scan(&seq); err != nil {
		return accepted, nil, fmt.Errorf("%w: next seq: %w", ErrScanningRow, err)
	}

	version := current.RowVersion + 1
	var fields any
	if !record.IsDelete() {
		fields = nullableJSON(record.Payload)
	}

	if _, err = tx.ExecContext(ctx, upsertSyncRow,
		record.EntityType,
		record.EntityID,
		record.OwnerID,
		fields,
		record.IsDelete(),
		version,
		record.LocalTimestamp.UTC(),
		scope.UserID,
		seq,
	); err != nil {
		return accepted, nil, fmt.Errorf("%w: upsert row: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertReceipt,
		record.ID,
		scope.UserID,
		record.EntityType,
		record.EntityID,
		version,
		seq,
		overwrote,
	); err != nil {
		if isUniqueViolation(err) {
			return accepted, nil, fmt.Errorf("%w: duplicate receipt for %s v%d: %w", ErrExecutingStatement, record.Key(), version, err)
		}
		return accepted, nil, fmt.Errorf("%w: receipt: %w", ErrExecutingStatement, err)
	}

	accepted.RowVersion = version
	accepted.Seq = seq
	accepted.Overwrote = overwrote

	return accepted, nil, nil
}

func (s *syncRowRepository) PullSince(ctx context.Context, scope models.Scope, cursor int64, limit int) ([]models.Row, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPullQuery(scope, cursor, limit)
	if err != nil {
		log.Err(err).
			Str("func", "syncRowRepository.PullSince").
			Str("user_id", scope.UserID).
			Msg("failed to create query")
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRowRepository.PullSince").
			Str("user_id", scope.UserID).
			Int64("cursor", cursor).
			Msg("failed to execute pull query")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.Row, 0, limit+1)
	for rows.Next() {
		var row models.Row
		if err = scanSyncRow(rows, &row, true); err != nil {
			log.Err(err).
				Str("func", "syncRowRepository.PullSince").
				Str("user_id", scope.UserID).
				Msg("failed to scan sync row")
			return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "syncRowRepository.PullSince").
			Str("user_id", scope.UserID).
			Msg("error occurred during rows iteration")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	hasMore := len(result) > limit
	if hasMore {
		result = result[:limit]
	}

	return result, hasMore, nil
}

func newConflict(record models.ChangeRecord, reason models.ConflictReason, message string, serverRow *models.Row) *models.Conflict {
	return &models.Conflict{
		ChangeID:   record.ID,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		RowVersion: record.RowVersion,
		Reason:     reason,
		Message:    message,
		ServerRow:  serverRow,
	}
}

func getSyncRowForUpdate(ctx context.Context, tx *sql.Tx, key models.RowKey) (models.Row, bool, error) {
	row := models.Row{EntityType: key.EntityType, EntityID: key.EntityID}
	err := scanSyncRow(tx.QueryRowContext(ctx, selectSyncRowForUpdate, key.EntityType, key.EntityID), &row, false)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Row{}, false, nil
	}
	if err != nil {
		return models.Row{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return row, true, nil
}

func scanSyncRow(s rowScanner, row *models.Row, withKey bool) error {
	var (
		fields    []byte
		updatedAt time.Time
	)

	dest := []any{&row.OwnerID, &fields, &row.Deleted, &row.RowVersion, &updatedAt, &row.ModifiedBy, &row.Seq}
	if withKey {
		dest = append([]any{&row.EntityType, &row.EntityID}, dest...)
	}
	if err := s.Scan(dest...); err != nil {
		return err
	}

	if len(fields) > 0 {
		row.Fields = fields
	}
	row.UpdatedAt = updatedAt.UTC()

	return nil
}

// retryTx runs fn in a transaction, retrying up to attempts times while the
// error classifier reports a retryable failure.
func (db *DB) retryTx(ctx context.Context, attempts int, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = db.inTx(ctx, fn)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}

	return err
}
