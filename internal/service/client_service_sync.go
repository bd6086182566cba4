package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/adapter"
	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/policy"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

// maxPushRounds bounds how often one pass re-drains the journal after
// stale conflicts were rebased.
const maxPushRounds = 3

type clientSyncService struct {
	rows        store.LocalRowRepository
	journal     store.ChangeJournal
	checkpoints store.CheckpointRepository
	locks       store.SyncLockRepository
	remote      adapter.RemoteEndpoint
	tracker     *StatusTracker
	policy      store.ConflictPolicy
	ids         *utils.UUIDGenerator
	validator   validators.Validator

	timeout       time.Duration
	lockTTL       time.Duration
	pushBatchSize int
	pullPageSize  int
	now           func() time.Time

	mu         sync.RWMutex
	lastResult *models.SyncResult
	// active counts running passes; idle is signalled when it drops to zero.
	active int
	idle   *sync.Cond

	logger *logger.Logger
}

func NewClientSyncService(storages *store.ClientStorages, remote adapter.RemoteEndpoint, tracker *StatusTracker, cfg config.ClientSync, logger *logger.Logger) ClientSyncService {
	if cfg.PushBatchSize <= 0 {
		cfg.PushBatchSize = 100
	}
	cfg.PushBatchSize = min(cfg.PushBatchSize, models.MaxPushBatchSize)
	if cfg.PullPageSize <= 0 {
		cfg.PullPageSize = 200
	}
	cfg.PullPageSize = min(cfg.PullPageSize, models.MaxPullPageSize)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	s := &clientSyncService{
		rows:          storages.Rows,
		journal:       storages.Journal,
		checkpoints:   storages.Checkpoints,
		locks:         storages.Locks,
		remote:        remote,
		tracker:       tracker,
		policy:        LastWriterWins{},
		ids:           utils.NewUUIDGenerator(),
		validator:     validators.NewSyncValidator(),
		timeout:       cfg.Timeout,
		lockTTL:       cfg.LockTTL,
		pushBatchSize: cfg.PushBatchSize,
		pullPageSize:  cfg.PullPageSize,
		now:           time.Now,
		logger:        logger,
	}
	s.idle = sync.NewCond(&s.mu)

	return s
}

// Sync takes the per-user lock and runs one pass detached from ctx. If ctx
// is cancelled first the caller gets "continuing in background" while the
// pass completes, records its status and releases the lock.
func (s *clientSyncService) Sync(ctx context.Context, userID string, role models.Role) models.SyncResult {
	log := s.logger.WithUser(userID)

	// the lease covers the whole pass so a live pass is never reclaimed
	owner := s.ids.Generate()
	acquired, err := s.locks.Acquire(ctx, userID, owner, max(s.lockTTL, s.timeout))
	if err != nil {
		log.Err(err).Str("func", "*clientSyncService.Sync").Msg("failed to acquire sync lock")
		return failedResult(fmt.Errorf("acquire sync lock: %w", err))
	}
	if !acquired {
		log.Info().Str("func", "*clientSyncService.Sync").Msg("sync rejected, lock is held")
		return failedResult(ErrSyncInProgress)
	}

	passCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	passCtx = log.WithContext(passCtx)

	if err = s.tracker.begin(passCtx); err != nil {
		log.Err(err).Str("func", "*clientSyncService.Sync").Msg("failed to record sync start")
	}

	done := make(chan models.SyncResult, 1)
	s.mu.Lock()
	s.active++
	s.mu.Unlock()
	go func() {
		defer cancel()

		result := s.runPass(passCtx, userID, role)

		// the pass context may have timed out; cleanup still has to happen
		cleanupCtx := context.WithoutCancel(passCtx)
		if err := s.tracker.finish(cleanupCtx, result); err != nil {
			log.Err(err).Str("func", "*clientSyncService.Sync").Msg("failed to record sync status")
		}
		if err := s.locks.Release(cleanupCtx, userID, owner); err != nil {
			log.Err(err).Str("func", "*clientSyncService.Sync").Msg("failed to release sync lock")
		}

		s.mu.Lock()
		s.lastResult = &result
		s.active--
		if s.active == 0 {
			s.idle.Broadcast()
		}
		s.mu.Unlock()

		done <- result
	}()

	select {
	case result := <-done:
		return result
	case <-ctx.Done():
		log.Info().Str("func", "*clientSyncService.Sync").Msg("caller left, sync continues in background")
		return failedResult(ErrContinuingInBackground)
	}
}

func (s *clientSyncService) GetSyncStatus(ctx context.Context) models.SyncStatus {
	return s.tracker.Current()
}

func (s *clientSyncService) LastResult() (models.SyncResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastResult == nil {
		return models.SyncResult{}, false
	}
	return *s.lastResult, true
}

func (s *clientSyncService) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.active > 0 {
		s.idle.Wait()
	}
}

// runPass pushes, pulls and advances the checkpoint. Any remote or storage
// failure aborts the pass with the checkpoint untouched.
func (s *clientSyncService) runPass(ctx context.Context, userID string, role models.Role) models.SyncResult {
	log := logger.FromContext(ctx)
	started := s.now()

	checkpoint, err := s.checkpoints.Get(ctx, userID)
	if err != nil {
		return failedResult(fmt.Errorf("load checkpoint: %w", err))
	}

	var warnings []string

	pushed, attempted, pushWarnings, err := s.push(ctx, userID, role)
	warnings = append(warnings, pushWarnings...)
	if err != nil {
		log.Err(err).Str("func", "*clientSyncService.runPass").Int("pushed", pushed).Msg("push failed")
		return failedResult(err, warnings...)
	}

	pulled, next, pullWarnings, err := s.pull(ctx, userID, checkpoint)
	warnings = append(warnings, pullWarnings...)
	if err != nil {
		log.Err(err).Str("func", "*clientSyncService.runPass").Int("pulled", pulled).Msg("pull failed")
		return failedResult(err, warnings...)
	}

	if attempted {
		pushedAt := s.now().UTC()
		next.LastPushedAt = &pushedAt
	}
	if err = s.checkpoints.Advance(ctx, next); err != nil {
		return failedResult(fmt.Errorf("advance checkpoint: %w", err), warnings...)
	}

	log.Info().Str("func", "*clientSyncService.runPass").
		Int("pushed", pushed).
		Int("pulled", pulled).
		Int("warnings", len(warnings)).
		Int64("cursor", next.Cursor).
		Dur("took", s.now().Sub(started)).
		Msg("sync finished")

	return models.SyncResult{
		Success:     true,
		PushedCount: pushed,
		PulledCount: pulled,
		Message:     fmt.Sprintf("synced: pushed %d, pulled %d", pushed, pulled),
		Errors:      warnings,
	}
}

// push drains the journal and pushes every record the role may write.
// Records rebased after a stale conflict are pushed again in the next
// round.
func (s *clientSyncService) push(ctx context.Context, userID string, role models.Role) (int, bool, []string, error) {
	var (
		pushed    int
		attempted bool
		warnings  []string
	)

	for round := 0; round < maxPushRounds; round++ {
		pending, err := s.journal.DrainUnsynced(ctx, userID)
		if err != nil {
			return pushed, attempted, warnings, fmt.Errorf("drain journal: %w", err)
		}

		pushable, held := splitByRole(pending, role)
		if round == 0 {
			warnings = append(warnings, heldBackWarnings(held, role)...)
		}
		if len(pushable) == 0 {
			break
		}
		attempted = true

		rebased := 0
		for start := 0; start < len(pushable); start += s.pushBatchSize {
			batch := pushable[start:min(start+s.pushBatchSize, len(pushable))]

			report, err := s.pushBatch(ctx, userID, batch)
			pushed += report.Synced
			rebased += report.Rebased
			warnings = append(warnings, report.Warnings...)
			if err != nil {
				return pushed, attempted, warnings, err
			}
		}

		if rebased == 0 {
			break
		}
	}

	return pushed, attempted, warnings, nil
}

// pushBatch sends batch and records the answer. Records that fail local
// validation are discarded without being sent. A batch the remote endpoint
// refuses as invalid is split in halves until the offending record is
// alone, and that record is discarded, so the rest of the journal keeps
// moving.
func (s *clientSyncService) pushBatch(ctx context.Context, userID string, batch []models.ChangeRecord) (store.ResolveReport, error) {
	var total store.ResolveReport

	valid, invalid, conflicts := s.splitInvalid(ctx, batch)
	if len(invalid) > 0 {
		report, err := s.rows.ResolvePush(ctx, userID, invalid, models.PushResponse{Conflicts: conflicts}, s.policy)
		if err != nil {
			return total, fmt.Errorf("resolve push: %w", err)
		}
		total = mergeReports(total, report)
	}
	if len(valid) == 0 {
		return total, nil
	}

	resp, err := s.remote.PushBatch(ctx, models.PushRequest{
		PushID:  s.ids.Generate(),
		Records: valid,
	})
	if err != nil {
		err = mapAdapterError(err)
		if !errors.Is(err, ErrInvalidDataProvided) {
			return total, err
		}
		if len(valid) > 1 {
			mid := len(valid) / 2
			for _, half := range [][]models.ChangeRecord{valid[:mid], valid[mid:]} {
				report, err := s.pushBatch(ctx, userID, half)
				total = mergeReports(total, report)
				if err != nil {
					return total, err
				}
			}
			return total, nil
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*clientSyncService.pushBatch").
			Str("change_id", valid[0].ID).
			Msg("remote endpoint refused change as invalid")
		resp = models.PushResponse{Conflicts: []models.Conflict{invalidConflict(valid[0], err.Error())}}
	}

	report, err := s.rows.ResolvePush(ctx, userID, valid, resp, s.policy)
	if err != nil {
		return total, fmt.Errorf("resolve push: %w", err)
	}
	return mergeReports(total, report), nil
}

// splitInvalid separates records the remote endpoint would refuse.
func (s *clientSyncService) splitInvalid(ctx context.Context, batch []models.ChangeRecord) ([]models.ChangeRecord, []models.ChangeRecord, []models.Conflict) {
	var (
		valid, invalid []models.ChangeRecord
		conflicts      []models.Conflict
	)
	for _, record := range batch {
		if err := s.validator.Validate(ctx, record); err != nil {
			invalid = append(invalid, record)
			conflicts = append(conflicts, invalidConflict(record, err.Error()))
			continue
		}
		valid = append(valid, record)
	}
	return valid, invalid, conflicts
}

func invalidConflict(record models.ChangeRecord, message string) models.Conflict {
	return models.Conflict{
		ChangeID:   record.ID,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		RowVersion: record.RowVersion,
		Reason:     models.ConflictInvalid,
		Message:    message,
	}
}

func mergeReports(a, b store.ResolveReport) store.ResolveReport {
	return store.ResolveReport{
		Synced:     a.Synced + b.Synced,
		Discarded:  a.Discarded + b.Discarded,
		Rebased:    a.Rebased + b.Rebased,
		Warnings:   append(a.Warnings, b.Warnings...),
		Unanswered: a.Unanswered + b.Unanswered,
	}
}

// pull pages through remote changes after the checkpoint cursor and applies
// them. It returns the checkpoint to store once the pass succeeds.
func (s *clientSyncService) pull(ctx context.Context, userID string, checkpoint models.SyncCheckpoint) (int, models.SyncCheckpoint, []string, error) {
	var (
		pulled   int
		warnings []string
	)

	next := checkpoint
	next.UserID = userID

	for {
		resp, err := s.remote.PullSince(ctx, models.PullRequest{Cursor: next.Cursor, Limit: s.pullPageSize})
		if err != nil {
			return pulled, checkpoint, warnings, mapAdapterError(err)
		}

		report, err := s.rows.ApplyRemote(ctx, userID, resp.Rows, s.policy)
		if err != nil {
			return pulled, checkpoint, warnings, fmt.Errorf("apply remote rows: %w", err)
		}
		pulled += report.Applied
		warnings = append(warnings, report.Warnings...)

		if resp.Checkpoint.Cursor > next.Cursor {
			next.Cursor = resp.Checkpoint.Cursor
		}
		if !resp.Checkpoint.PulledAt.IsZero() {
			pulledAt := resp.Checkpoint.PulledAt
			next.LastPulledAt = &pulledAt
		}

		if !resp.HasMore || len(resp.Rows) == 0 {
			break
		}
		if err = ctx.Err(); err != nil {
			return pulled, checkpoint, warnings, err
		}
	}

	return pulled, next, warnings, nil
}

// splitByRole separates records the role may push from those the remote
// endpoint would refuse outright.
func splitByRole(records []models.ChangeRecord, role models.Role) ([]models.ChangeRecord, []models.ChangeRecord) {
	var pushable, held []models.ChangeRecord
	for _, record := range records {
		if policy.RoleMayWrite(role, record.EntityType) {
			pushable = append(pushable, record)
		} else {
			held = append(held, record)
		}
	}
	return pushable, held
}

func heldBackWarnings(held []models.ChangeRecord, role models.Role) []string {
	counts := make(map[models.EntityType]int)
	for _, record := range held {
		counts[record.EntityType]++
	}

	warnings := make([]string, 0, len(counts))
	for entityType, n := range counts {
		warnings = append(warnings, fmt.Sprintf("%d pending %s change(s) kept locally: role %s may not write %s", n, entityType, role, entityType))
	}
	sort.Strings(warnings)
	return warnings
}

func failedResult(err error, warnings ...string) models.SyncResult {
	errs := append([]string{err.Error()}, warnings...)
	return models.SyncResult{
		Success: false,
		Message: err.Error(),
		Errors:  errs,
	}
}

// IsLockContention reports whether result was rejected because another pass
// held the lock.
func IsLockContention(result models.SyncResult) bool {
	return !result.Success && result.Message == ErrSyncInProgress.Error()
}
