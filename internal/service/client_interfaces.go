package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientRowService is the Local Store as seen by the UI and the CLI. Every
// mutation is written locally and journaled in one transaction; nothing
// talks to the network.
type ClientRowService interface {
	// Write inserts or updates a row and returns its new local view.
	Write(ctx context.Context, userID string, write models.LocalWrite) (models.RowView, error)

	// Delete tombstones a row locally and returns the journaled change.
	Delete(ctx context.Context, userID string, key models.RowKey) (models.ChangeRecord, error)

	// Read returns the latest local state of a row.
	Read(ctx context.Context, userID string, key models.RowKey) (models.RowView, error)

	// List returns every visible row of entityType.
	List(ctx context.Context, userID string, entityType models.EntityType) ([]models.RowView, error)

	// PendingCount returns the number of journaled changes not yet
	// acknowledged by the remote endpoint.
	PendingCount(ctx context.Context, userID string) (int, error)
}

// ClientSyncService runs reconciliation passes against the remote endpoint.
type ClientSyncService interface {
	// Sync runs one push+pull pass for userID. It never panics and never
	// returns an error; failures are reported in the result. A pass that
	// started keeps running when ctx is cancelled.
	Sync(ctx context.Context, userID string, role models.Role) models.SyncResult

	// GetSyncStatus returns the process-wide status.
	GetSyncStatus(ctx context.Context) models.SyncStatus

	// LastResult returns the result of the last finished pass, if any.
	LastResult() (models.SyncResult, bool)

	// Wait blocks until every started pass has finished.
	Wait()
}

// ClientSyncJob calls Sync on a ticker.
type ClientSyncJob interface {
	// Start launches the background job. Any running job is stopped
	// first. A non-positive interval defaults to 5 minutes.
	Start(ctx context.Context, userID string, role models.Role, interval time.Duration)

	// Stop stops the job and blocks until its goroutine exits.
	Stop()
}
