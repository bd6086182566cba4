package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// WriteAuthorizer decides whether a caller may write a row of entityType
// owned by ownerID.
type WriteAuthorizer interface {
	CanWrite(scope models.Scope, entityType models.EntityType, ownerID string) bool
}

// SyncRowRepository stores the authoritative rows of the remote endpoint.
type SyncRowRepository interface {
	// ApplyPush applies records in one transaction and answers per record.
	ApplyPush(ctx context.Context, scope models.Scope, records []models.ChangeRecord, authorizer WriteAuthorizer) (models.PushResponse, error)
	// PullSince returns rows visible to scope with seq > cursor in seq
	// order, at most limit of them, and whether more remain.
	PullSince(ctx context.Context, scope models.Scope, cursor int64, limit int) ([]models.Row, bool, error)
}

// RosterRepository stores trainer enrollments.
type RosterRepository interface {
	AthletesOf(ctx context.Context, trainerID string) ([]string, error)
	ListRoster(ctx context.Context, trainerID string) ([]models.RosterEntry, error)
	Enroll(ctx context.Context, trainerID, athleteID string) (models.RosterEntry, error)
}

// ReceiptRepository maintains applied-change receipts.
type ReceiptRepository interface {
	// PruneReceipts deletes receipts applied before olderThan.
	PruneReceipts(ctx context.Context, olderThan time.Time) (int64, error)
}
