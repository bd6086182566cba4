package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	SyncRowRepository SyncRowRepository
	RosterRepository  RosterRepository
	ReceiptRepository ReceiptRepository

	db *DB
}

// NewStorages connects to Postgres, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.MigratePostgres(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		SyncRowRepository: NewSyncRowRepository(db, logger),
		RosterRepository:  NewRosterRepository(db, logger),
		ReceiptRepository: NewReceiptRepository(db),
		db:                db,
	}, nil
}

// Close closes the database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
