package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
)

// ClientStorages groups the on-device repositories. All of them share one
// SQLite handle.
type ClientStorages struct {
	Rows        LocalRowRepository
	Journal     ChangeJournal
	Checkpoints CheckpointRepository
	Locks       SyncLockRepository
	Status      SyncStatusRepository

	db *DB
}

// NewClientStorages opens the local database at cfg.DB.DSN, creating the
// file if needed, applies migrations and builds the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateSQLite(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Rows:        NewLocalRowRepository(db),
		Journal:     NewChangeJournal(db),
		Checkpoints: NewCheckpointRepository(db),
		Locks:       NewSyncLockRepository(db),
		Status:      NewSyncStatusRepository(db),
		db:          db,
	}, nil
}

// Close closes the shared database handle.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
