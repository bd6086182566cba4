package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/models"
)

const msgInterrupted = "previous sync interrupted"

// StatusTracker owns the process-wide SyncStatus. It is loaded once from
// the local database and written only by the sync engine; everything else
// reads a copy.
type StatusTracker struct {
	repo store.SyncStatusRepository

	mu     sync.RWMutex
	status models.SyncStatus
	now    func() time.Time
}

// LoadStatusTracker loads the persisted status. A status still "syncing"
// while nobody holds userID's sync lock was left by a crashed pass and is
// turned into an error.
func LoadStatusTracker(ctx context.Context, repo store.SyncStatusRepository, locks store.SyncLockRepository, userID string) (*StatusTracker, error) {
	status, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	t := &StatusTracker{repo: repo, status: status, now: time.Now}
	if status.Status != models.StatusSyncing {
		return t, nil
	}

	probe := utils.NewUUIDGenerator().Generate()
	acquired, err := locks.Acquire(ctx, userID, probe, time.Second)
	if err != nil {
		return nil, fmt.Errorf("probe sync lock: %w", err)
	}
	if !acquired {
		// another process is syncing right now
		return t, nil
	}
	if err = locks.Release(ctx, userID, probe); err != nil && !errors.Is(err, store.ErrLockNotHeld) {
		return nil, fmt.Errorf("release probe lock: %w", err)
	}

	msg := msgInterrupted
	t.status.Status = models.StatusError
	t.status.LastError = &msg
	if err = repo.Save(ctx, t.status); err != nil {
		return nil, err
	}

	return t, nil
}

// Current returns a copy of the status.
func (t *StatusTracker) Current() models.SyncStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	status := t.status
	if status.LastSyncAt != nil {
		at := *status.LastSyncAt
		status.LastSyncAt = &at
	}
	if status.LastError != nil {
		msg := *status.LastError
		status.LastError = &msg
	}
	return status
}

func (t *StatusTracker) begin(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.Status = models.StatusSyncing
	return t.repo.Save(ctx, t.status)
}

// finish records the outcome of a pass.
func (t *StatusTracker) finish(ctx context.Context, result models.SyncResult) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if result.Success {
		now := t.now().UTC()
		t.status.Status = models.StatusSuccess
		t.status.LastSyncAt = &now
		t.status.LastError = nil
		t.status.TotalSynced += int64(result.PushedCount + result.PulledCount)
	} else {
		msg := result.Message
		t.status.Status = models.StatusError
		t.status.LastError = &msg
	}

	return t.repo.Save(ctx, t.status)
}
