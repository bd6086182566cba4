package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// ConflictPolicy decides row-level conflicts between a pending local change
// and a remote row.
type ConflictPolicy interface {
	// LocalWins reports whether the pending local change should be kept
	// over remote.
	LocalWins(local models.ChangeRecord, remote models.Row) bool
}

// LocalRowRepository is the on-device Local Store. Every mutation runs in one
// transaction together with the matching change journal update.
type LocalRowRepository interface {
	Write(ctx context.Context, userID string, write models.LocalWrite) (models.ChangeRecord, error)
	Delete(ctx context.Context, userID string, key models.RowKey) (models.ChangeRecord, error)
	Read(ctx context.Context, userID string, key models.RowKey) (models.RowView, error)
	List(ctx context.Context, userID string, entityType models.EntityType) ([]models.RowView, error)

	// ApplyRemote merges pulled rows into the Local Store.
	ApplyRemote(ctx context.Context, userID string, rows []models.Row, policy ConflictPolicy) (ApplyReport, error)
	// ResolvePush records the remote answer to a pushed batch.
	ResolvePush(ctx context.Context, userID string, batch []models.ChangeRecord, resp models.PushResponse, policy ConflictPolicy) (ResolveReport, error)
}

// ChangeJournal is the append-only log of local mutations.
type ChangeJournal interface {
	// Append stores record as pending and supersedes older pending records
	// of the same row.
	Append(ctx context.Context, record models.ChangeRecord) error
	// DrainUnsynced returns pending records in journal order. It returns
	// the same records again until they are marked.
	DrainUnsynced(ctx context.Context, userID string) ([]models.ChangeRecord, error)
	MarkSynced(ctx context.Context, userID string, ids []string) error
	PendingCount(ctx context.Context, userID string) (int, error)
}

// CheckpointRepository persists per-user pull positions.
type CheckpointRepository interface {
	Get(ctx context.Context, userID string) (models.SyncCheckpoint, error)
	// Advance stores checkpoint. Values never move backward.
	Advance(ctx context.Context, checkpoint models.SyncCheckpoint) error
}

// SyncLockRepository is a per-user lease shared by every process using the
// same database file.
type SyncLockRepository interface {
	// Acquire takes the lock for owner unless another owner holds an
	// unexpired lease.
	Acquire(ctx context.Context, userID, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, userID, owner string) error
}

// SyncStatusRepository persists the process-wide sync status.
type SyncStatusRepository interface {
	Load(ctx context.Context) (models.SyncStatus, error)
	Save(ctx context.Context, status models.SyncStatus) error
}

// ApplyReport summarizes [LocalRowRepository.ApplyRemote].
type ApplyReport struct {
	// Applied counts rows whose local state changed.
	Applied int
	// Kept counts rows where a pending local change won.
	Kept int
	// Skipped counts rows already known locally.
	Skipped  int
	Warnings []string
}

// ResolveReport summarizes [LocalRowRepository.ResolvePush].
type ResolveReport struct {
	Synced     int
	Discarded  int
	Rebased    int
	Warnings   []string
	Unanswered int
}
