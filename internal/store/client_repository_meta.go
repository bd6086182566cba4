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

type checkpointRepository struct {
	*DB
}

func NewCheckpointRepository(db *DB) CheckpointRepository {
	return &checkpointRepository{DB: db}
}

// Get returns the stored checkpoint or a zero checkpoint for a new user.
func (c *checkpointRepository) Get(ctx context.Context, userID string) (models.SyncCheckpoint, error) {
	checkpoint := models.SyncCheckpoint{UserID: userID}
	var pulledAt, pushedAt sql.NullInt64

	err := c.DB.QueryRowContext(ctx, getCheckpoint, userID).Scan(&checkpoint.Cursor, &pulledAt, &pushedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return checkpoint, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "checkpointRepository.Get").
			Str("user_id", userID).
			Msg("failed to read checkpoint")
		return models.SyncCheckpoint{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	checkpoint.LastPulledAt = timeFromNullMicros(pulledAt)
	checkpoint.LastPushedAt = timeFromNullMicros(pushedAt)

	return checkpoint, nil
}

func (c *checkpointRepository) Advance(ctx context.Context, checkpoint models.SyncCheckpoint) error {
	_, err := c.DB.ExecContext(ctx, advanceCheckpoint,
		checkpoint.UserID,
		checkpoint.Cursor,
		nullableMicros(checkpoint.LastPulledAt),
		nullableMicros(checkpoint.LastPushedAt),
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "checkpointRepository.Advance").
			Str("user_id", checkpoint.UserID).
			Int64("cursor", checkpoint.Cursor).
			Msg("failed to advance checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

type syncLockRepository struct {
	*DB
	now func() time.Time
}

func NewSyncLockRepository(db *DB) SyncLockRepository {
	return &syncLockRepository{DB: db, now: time.Now}
}

func (s *syncLockRepository) Acquire(ctx context.Context, userID, owner string, ttl time.Duration) (bool, error) {
	now := s.now()

	result, err := s.DB.ExecContext(ctx, acquireSyncLock,
		userID,
		owner,
		now.UnixMicro(),
		now.Add(ttl).UnixMicro(),
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncLockRepository.Acquire").
			Str("user_id", userID).
			Msg("failed to acquire sync lock")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

func (s *syncLockRepository) Release(ctx context.Context, userID, owner string) error {
	result, err := s.DB.ExecContext(ctx, releaseSyncLock, userID, owner)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncLockRepository.Release").
			Str("user_id", userID).
			Msg("failed to release sync lock")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrLockNotHeld
	}

	return nil
}

type syncStatusRepository struct {
	*DB
}

func NewSyncStatusRepository(db *DB) SyncStatusRepository {
	return &syncStatusRepository{DB: db}
}

// Load returns the persisted status, or idle when nothing was saved yet.
func (s *syncStatusRepository) Load(ctx context.Context) (models.SyncStatus, error) {
	var (
		status     models.SyncStatus
		lastSyncAt sql.NullInt64
		lastError  sql.NullString
	)

	err := s.DB.QueryRowContext(ctx, getSyncStatus).Scan(&status.Status, &lastSyncAt, &lastError, &status.TotalSynced)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncStatus{Status: models.StatusIdle}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStatusRepository.Load").
			Msg("failed to read sync status")
		return models.SyncStatus{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	status.LastSyncAt = timeFromNullMicros(lastSyncAt)
	if lastError.Valid {
		status.LastError = &lastError.String
	}

	return status, nil
}

func (s *syncStatusRepository) Save(ctx context.Context, status models.SyncStatus) error {
	var lastError any
	if status.LastError != nil {
		lastError = *status.LastError
	}

	_, err := s.DB.ExecContext(ctx, saveSyncStatus,
		status.Status,
		nullableMicros(status.LastSyncAt),
		lastError,
		status.TotalSynced,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStatusRepository.Save").
			Str("status", string(status.Status)).
			Msg("failed to save sync status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
