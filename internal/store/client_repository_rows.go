// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

type localRowRepository struct {
	*DB
	ids       *utils.UUIDGenerator
	validator validators.Validator
	now       func() time.Time
}

func NewLocalRowRepository(db *DB) LocalRowRepository {
	return &localRowRepository{
		DB:        db,
		ids:       utils.NewUUIDGenerator(),
		validator: validators.NewSyncValidator(),
		now:       time.Now,
	}
}

// localRow is the stored shape of a row in local_rows.
type localRow struct {
	key              models.RowKey
	ownerID          string
	fields           []byte
	deleted          bool
	updatedAt        time.Time
	serverVersion    int64
	confirmedFields  []byte
	confirmedDeleted bool
	confirmedAt      *time.Time
	dirty            bool
}

func (r localRow) view() models.RowView {
	return models.RowView{
		Row: models.Row{
			EntityType: r.key.EntityType,
			EntityID:   r.key.EntityID,
			OwnerID:    r.ownerID,
			Fields:     r.fields,
			Deleted:    r.deleted,
			RowVersion: r.serverVersion,
			UpdatedAt:  r.updatedAt,
		},
		State:          models.RowConfirmed,
		BasedOnVersion: r.serverVersion,
	}
}

func (l *localRowRepository) Write(ctx context.Context, userID string, write models.LocalWrite) (models.ChangeRecord, error) {
	log := logger.FromContext(ctx)

	key := models.RowKey{EntityType: write.EntityType, EntityID: write.EntityID}
	if err := l.validateWrite(ctx, write); err != nil {
		return models.ChangeRecord{}, err
	}

	var record models.ChangeRecord
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		current, found, err := getRow(ctx, tx, userID, key)
		if err != nil {
			return err
		}

		ownerID := write.OwnerID
		switch {
		case found && ownerID != "" && ownerID != current.ownerID:
			return fmt.Errorf("%w: %s owned by %s", ErrOwnerMismatch, key, current.ownerID)
		case found:
			ownerID = current.ownerID
		case ownerID == "":
			ownerID = userID
		}

		operation := models.OperationInsert
		if found && !current.deleted {
			operation = models.OperationUpdate
		}

		record, err = l.newRecord(ctx, tx, userID, key, ownerID, operation, write.Fields, current)
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, upsertLocalWrite,
			userID,
			key.EntityType,
			key.EntityID,
			ownerID,
			string(write.Fields),
			false,
			record.LocalTimestamp.UnixMicro(),
		); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.Write").
			Str("user_id", userID).
			Str("row", key.String()).
			Msg("failed to write row")
		return models.ChangeRecord{}, err
	}

	return record, nil
}

func (l *localRowRepository) Delete(ctx context.Context, userID string, key models.RowKey) (models.ChangeRecord, error) {
	log := logger.FromContext(ctx)

	var record models.ChangeRecord
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		current, found, err := getRow(ctx, tx, userID, key)
		if err != nil {
			return err
		}
		if !found || current.deleted {
			return fmt.Errorf("%w: %s", ErrRowNotFound, key)
		}

		record, err = l.newRecord(ctx, tx, userID, key, current.ownerID, models.OperationDelete, nil, current)
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, upsertLocalWrite,
			userID,
			key.EntityType,
			key.EntityID,
			current.ownerID,
			nil,
			true,
			record.LocalTimestamp.UnixMicro(),
		); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.Delete").
			Str("user_id", userID).
			Str("row", key.String()).
			Msg("failed to delete row")
		return models.ChangeRecord{}, err
	}

	return record, nil
}

func (l *localRowRepository) Read(ctx context.Context, userID string, key models.RowKey) (models.RowView, error) {
	log := logger.FromContext(ctx)

	current, found, err := getRow(ctx, l.DB, userID, key)
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.Read").
			Str("user_id", userID).
			Str("row", key.String()).
			Msg("failed to read row")
		return models.RowView{}, err
	}
	if !found || current.deleted {
		return models.RowView{}, fmt.Errorf("%w: %s", ErrRowNotFound, key)
	}

	view := current.view()
	if !current.dirty {
		return view, nil
	}

	pending, err := latestPendingChange(ctx, l.DB, userID, key)
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.Read").
			Str("user_id", userID).
			Str("row", key.String()).
			Msg("failed to read pending change")
		return models.RowView{}, err
	}
	if pending != nil {
		view.State = models.RowPendingLocal
		view.Pending = pending
	}

	return view, nil
}

func (l *localRowRepository) List(ctx context.Context, userID string, entityType models.EntityType) ([]models.RowView, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listLocalRows, userID, entityType)
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.List").
			Str("user_id", userID).
			Str("entity_type", string(entityType)).
			Msg("failed to query rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	stored, err := scanLocalRows(rows, entityType)
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.List").
			Str("user_id", userID).
			Msg("failed to scan rows")
		return nil, err
	}

	// Rows are closed before the journal query; the client pool holds a
	// single connection.
	pendingRows, err := l.DB.QueryContext(ctx, getPendingChangesByType, userID, entityType)
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.List").
			Str("user_id", userID).
			Msg("failed to query pending changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	pending, err := scanChanges(pendingRows)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]models.ChangeRecord, len(pending))
	for _, record := range pending {
		latest[record.EntityID] = record
	}

	views := make([]models.RowView, 0, len(stored))
	for _, row := range stored {
		view := row.view()
		if record, ok := latest[row.key.EntityID]; ok && row.dirty {
			view.State = models.RowPendingLocal
			view.Pending = &record
		}
		views = append(views, view)
	}

	return views, nil
}

// ApplyRemote merges pulled rows in one transaction. A row already known at
// the same or a newer server version is skipped. When a pending local
// change exists, policy decides: a winning local change is rebased onto the
// remote version, a losing one is discarded and the remote row overwrites
// the local state.
func (l *localRowRepository) ApplyRemote(ctx context.Context, userID string, rows []models.Row, policy ConflictPolicy) (ApplyReport, error) {
	log := logger.FromContext(ctx)

	var report ApplyReport
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		report = ApplyReport{}
		for _, remote := range rows {
			outcome, warning, err := l.applyRemoteRow(ctx, tx, userID, remote, policy)
			if err != nil {
				return err
			}
			switch outcome {
			case applyOverwritten, applyInserted:
				report.Applied++
			case applyRebased:
				report.Kept++
			default:
				report.Skipped++
			}
			if warning != "" {
				report.Warnings = append(report.Warnings, warning)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.ApplyRemote").
			Str("user_id", userID).
			Int("rows", len(rows)).
			Msg("failed to apply remote rows")
		return ApplyReport{}, err
	}

	return report, nil
}

// ResolvePush records the remote answer to batch in one transaction.
// Accepted records become synced and confirm the row. Stale records are
// resolved against the returned server row with policy. Scope violations
// and invalid records are discarded and the row reverts to its confirmed
// state. Records the response does not mention stay pending.
func (l *localRowRepository) ResolvePush(ctx context.Context, userID string, batch []models.ChangeRecord, resp models.PushResponse, policy ConflictPolicy) (ResolveReport, error) {
	log := logger.FromContext(ctx)

	byID := make(map[string]models.ChangeRecord, len(batch))
	for _, record := range batch {
		byID[record.ID] = record
	}

	var report ResolveReport
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		report = ResolveReport{}
		now := l.now()
		answered := make(map[string]struct{}, len(batch))

		for _, accepted := range resp.Accepted {
			record, ok := byID[accepted.ChangeID]
			if !ok {
				continue
			}
			answered[record.ID] = struct{}{}

			if _, err := tx.ExecContext(ctx, markChangeSynced, now.UnixMicro(), userID, record.ID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if _, err := tx.ExecContext(ctx, confirmLocalRow,
				accepted.RowVersion,
				nullableJSON(record.Payload),
				record.IsDelete(),
				record.LocalTimestamp.UnixMicro(),
				userID,
				record.EntityType,
				record.EntityID,
				accepted.RowVersion,
			); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			report.Synced++
		}

		for _, conflict := range resp.Conflicts {
			record, ok := byID[conflict.ChangeID]
			if !ok {
				continue
			}
			answered[record.ID] = struct{}{}

			var err error
			switch conflict.Reason {
			case models.ConflictScope:
				err = l.resolveRejected(ctx, tx, userID, record, conflict, now, &report,
					fmt.Sprintf("scope violation on %s: change %s rejected by server and discarded", record.Key(), record.ID))
			case models.ConflictInvalid:
				err = l.resolveRejected(ctx, tx, userID, record, conflict, now, &report,
					fmt.Sprintf("invalid change %s on %s discarded: %s", record.ID, record.Key(), conflict.Message))
			default:
				err = l.resolveStale(ctx, tx, userID, record, conflict, policy, now, &report)
			}
			if err != nil {
				return err
			}
		}

		report.Unanswered = len(batch) - len(answered)
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localRowRepository.ResolvePush").
			Str("user_id", userID).
			Int("records", len(batch)).
			Msg("failed to resolve push response")
		return ResolveReport{}, err
	}

	return report, nil
}

func (l *localRowRepository) resolveStale(ctx context.Context, tx *sql.Tx, userID string, record models.ChangeRecord, conflict models.Conflict, policy ConflictPolicy, now time.Time, report *ResolveReport) error {
	if conflict.ServerRow != nil {
		outcome, warning, err := l.applyRemoteRow(ctx, tx, userID, *conflict.ServerRow, policy)
		if err != nil {
			return err
		}
		switch outcome {
		case applyRebased:
			report.Rebased++
			return nil
		case applyOverwritten, applyInserted:
			report.Discarded++
			if warning == "" {
				warning = fmt.Sprintf("conflict on %s: server version %d wins, change %s discarded",
					record.Key(), conflict.ServerRow.RowVersion, record.ID)
			}
			report.Warnings = append(report.Warnings, warning)
			return nil
		}
	}

	// No usable server row: drop the record so it is not pushed again.
	reason := fmt.Sprintf("stale: %s", conflict.Message)
	if err := setChangeStatus(ctx, tx, discardChange, reason, now, userID, record.ID); err != nil {
		return err
	}
	report.Discarded++
	report.Warnings = append(report.Warnings,
		fmt.Sprintf("conflict on %s: change %s rejected as stale and discarded", record.Key(), record.ID))

	return nil
}

// resolveRejected discards a record that can never be accepted and, when
// no newer change is pending, reverts the row to its confirmed state.
func (l *localRowRepository) resolveRejected(ctx context.Context, tx *sql.Tx, userID string, record models.ChangeRecord, conflict models.Conflict, now time.Time, report *ResolveReport, warning string) error {
	reason := fmt.Sprintf("%s: %s", conflict.Reason, conflict.Message)
	if err := setChangeStatus(ctx, tx, discardChange, reason, now, userID, record.ID); err != nil {
		return err
	}
	report.Discarded++
	report.Warnings = append(report.Warnings, warning)

	pending, err := latestPendingChange(ctx, tx, userID, record.Key())
	if err != nil {
		return err
	}
	if pending != nil {
		return nil
	}

	current, found, err := getRow(ctx, tx, userID, record.Key())
	if err != nil || !found {
		return err
	}

	query := revertLocalRow
	if current.serverVersion == 0 {
		query = deleteLocalRow
	}
	if _, err = tx.ExecContext(ctx, query, userID, record.EntityType, record.EntityID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

type applyOutcome int

const (
	applySkipped applyOutcome = iota
	applyInserted
	applyOverwritten
	applyRebased
)

func (l *localRowRepository) applyRemoteRow(ctx context.Context, tx *sql.Tx, userID string, remote models.Row, policy ConflictPolicy) (applyOutcome, string, error) {
	key := remote.Key()

	current, found, err := getRow(ctx, tx, userID, key)
	if err != nil {
		return applySkipped, "", err
	}
	if found && current.serverVersion >= remote.RowVersion {
		return applySkipped, "", nil
	}

	pending, err := latestPendingChange(ctx, tx, userID, key)
	if err != nil {
		return applySkipped, "", err
	}

	now := l.now()
	if pending != nil && policy.LocalWins(*pending, remote) {
		if err = l.rebase(ctx, tx, *pending, remote, now); err != nil {
			return applySkipped, "", err
		}
		return applyRebased, "", nil
	}

	var warning string
	if pending != nil {
		reason := fmt.Sprintf("overwritten by server version %d", remote.RowVersion)
		if err = setChangeStatus(ctx, tx, discardPendingChanges, reason, now, userID, key.EntityType, key.EntityID); err != nil {
			return applySkipped, "", err
		}
		warning = fmt.Sprintf("conflict on %s: server version %d updated at %s wins, local change %s discarded",
			key, remote.RowVersion, remote.UpdatedAt.Format(time.RFC3339Nano), pending.ID)
	}

	if _, err = tx.ExecContext(ctx, upsertRemoteRow,
		userID,
		key.EntityType,
		key.EntityID,
		remote.OwnerID,
		nullableJSON(remote.Fields),
		remote.Deleted,
		remote.UpdatedAt.UnixMicro(),
		remote.RowVersion,
		nullableJSON(remote.Fields),
		remote.Deleted,
		remote.UpdatedAt.UnixMicro(),
	); err != nil {
		return applySkipped, "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// A tombstone for a row never seen locally changes nothing visible.
	if !found && remote.Deleted {
		return applySkipped, warning, nil
	}
	if !found {
		return applyInserted, warning, nil
	}

	return applyOverwritten, warning, nil
}

// rebase replaces the pending change with one based on the remote version
// so the next push applies cleanly. The local row keeps its values and
// only its confirmed state moves forward.
func (l *localRowRepository) rebase(ctx context.Context, tx *sql.Tx, pending models.ChangeRecord, remote models.Row, now time.Time) error {
	rebased := pending
	rebased.ID = l.ids.Generate()
	rebased.BaseVersion = remote.RowVersion
	rebased.RowVersion = remote.RowVersion + 1
	rebased.Status = models.JournalPending
	switch {
	case pending.IsDelete():
	case remote.Deleted:
		rebased.Operation = models.OperationInsert
	default:
		rebased.Operation = models.OperationUpdate
	}

	if err := appendChange(ctx, tx, rebased, now); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, confirmLocalRow,
		remote.RowVersion,
		nullableJSON(remote.Fields),
		remote.Deleted,
		remote.UpdatedAt.UnixMicro(),
		pending.UserID,
		remote.EntityType,
		remote.EntityID,
		remote.RowVersion,
	); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// newRecord builds and journals a change for key inside tx. The logical
// timestamp is strictly after every earlier local change and after the
// row's current timestamp.
func (l *localRowRepository) newRecord(ctx context.Context, tx *sql.Tx, userID string, key models.RowKey, ownerID string, operation models.Operation, fields json.RawMessage, current localRow) (models.ChangeRecord, error) {
	var last int64
	if err := tx.QueryRowContext(ctx, getLastLocalTimestamp, userID).Scan(&last); err != nil {
		return models.ChangeRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	ts := l.now().UnixMicro()
	if last >= ts {
		ts = last + 1
	}
	if rowTS := current.updatedAt.UnixMicro(); !current.updatedAt.IsZero() && rowTS >= ts {
		ts = rowTS + 1
	}

	record := models.ChangeRecord{
		ID:             l.ids.Generate(),
		UserID:         userID,
		EntityType:     key.EntityType,
		EntityID:       key.EntityID,
		OwnerID:        ownerID,
		Operation:      operation,
		Payload:        fields,
		LocalTimestamp: fromMicros(ts),
		RowVersion:     current.serverVersion + 1,
		BaseVersion:    current.serverVersion,
		Status:         models.JournalPending,
	}

	if err := appendChange(ctx, tx, record, l.now()); err != nil {
		return models.ChangeRecord{}, err
	}

	return record, nil
}

// validateWrite rejects writes the remote endpoint would refuse, so they
// never reach the journal.
func (l *localRowRepository) validateWrite(ctx context.Context, write models.LocalWrite) error {
	if err := l.validator.Validate(ctx, write); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRow, err)
	}
	trimmed := bytes.TrimSpace(write.Fields)
	if !json.Valid(trimmed) || len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: fields must be a JSON object", ErrInvalidRow)
	}
	return nil
}

// getRow returns the stored row, or found == false.
func getRow(ctx context.Context, q querier, userID string, key models.RowKey) (localRow, bool, error) {
	row := localRow{key: key}
	err := scanLocalRow(q.QueryRowContext(ctx, getLocalRow, userID, key.EntityType, key.EntityID), &row, false)
	if errors.Is(err, sql.ErrNoRows) {
		return localRow{}, false, nil
	}
	if err != nil {
		return localRow{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return row, true, nil
}

func scanLocalRow(s rowScanner, row *localRow, withID bool) error {
	var (
		fields, confirmedFields sql.NullString
		updatedAt               int64
		confirmedAt             sql.NullInt64
	)

	dest := []any{
		&row.ownerID,
		&fields,
		&row.deleted,
		&updatedAt,
		&row.serverVersion,
		&confirmedFields,
		&row.confirmedDeleted,
		&confirmedAt,
		&row.dirty,
	}
	if withID {
		dest = append([]any{&row.key.EntityID}, dest...)
	}

	if err := s.Scan(dest...); err != nil {
		return err
	}

	if fields.Valid {
		row.fields = []byte(fields.String)
	}
	if confirmedFields.Valid {
		row.confirmedFields = []byte(confirmedFields.String)
	}
	row.updatedAt = fromMicros(updatedAt)
	row.confirmedAt = timeFromNullMicros(confirmedAt)

	return nil
}

// scanLocalRows reads and closes rows.
func scanLocalRows(rows *sql.Rows, entityType models.EntityType) ([]localRow, error) {
	defer rows.Close()

	var result []localRow
	for rows.Next() {
		row := localRow{key: models.RowKey{EntityType: entityType}}
		if err := scanLocalRow(rows, &row, true); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}
