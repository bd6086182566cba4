package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/adapter"
	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/store"
)

type ClientServices struct {
	RowService  ClientRowService
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

// NewClientServices wires the client services. userID is the identity the
// process acts as; it is needed to recover a status left over by a crash.
func NewClientServices(ctx context.Context, storages *store.ClientStorages, remote adapter.RemoteEndpoint, userID string, cfg config.ClientSync, logger *logger.Logger) (*ClientServices, error) {
	tracker, err := LoadStatusTracker(ctx, storages.Status, storages.Locks, userID)
	if err != nil {
		return nil, fmt.Errorf("load sync status: %w", err)
	}

	syncSvc := NewClientSyncService(storages, remote, tracker, cfg, logger)

	return &ClientServices{
		RowService:  NewClientRowService(storages.Rows, storages.Journal, logger),
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc, logger),
	}, nil
}
