package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/models"
)

// syncService resolves the caller's scope from the roster and hands the
// push or pull to the row repository.
type syncService struct {
	rows       store.SyncRowRepository
	roster     store.RosterRepository
	authorizer store.WriteAuthorizer

	maxPullPage int
	now         func() time.Time

	logger *logger.Logger
}

func NewSyncService(rows store.SyncRowRepository, roster store.RosterRepository, authorizer store.WriteAuthorizer, cfg config.Server, logger *logger.Logger) SyncService {
	return &syncService{
		rows:        rows,
		roster:      roster,
		authorizer:  authorizer,
		maxPullPage: cfg.MaxPullPage,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *syncService) Push(ctx context.Context, userID string, role models.Role, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	scope, err := s.resolveScope(ctx, userID, role)
	if err != nil {
		return models.PushResponse{}, err
	}

	resp, err := s.rows.ApplyPush(ctx, scope, req.Records, s.authorizer)
	if err != nil {
		log.Err(err).Str("func", "*syncService.Push").Str("push_id", req.PushID).Msg("push failed")
		return models.PushResponse{}, fmt.Errorf("apply push %s: %w", req.PushID, err)
	}

	log.Info().Str("func", "*syncService.Push").
		Str("push_id", req.PushID).
		Int("accepted", len(resp.Accepted)).
		Int("conflicts", len(resp.Conflicts)).
		Msg("push applied")

	return resp, nil
}

func (s *syncService) Pull(ctx context.Context, userID string, role models.Role, req models.PullRequest) (models.PullResponse, error) {
	scope, err := s.resolveScope(ctx, userID, role)
	if err != nil {
		return models.PullResponse{}, err
	}

	limit := req.Limit
	if limit <= 0 || limit > s.maxPullPage {
		limit = s.maxPullPage
	}

	// taken before the query runs
	pulledAt := s.now().UTC()

	rows, hasMore, err := s.rows.PullSince(ctx, scope, req.Cursor, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*syncService.Pull").Int64("cursor", req.Cursor).Msg("pull failed")
		return models.PullResponse{}, fmt.Errorf("pull since %d: %w", req.Cursor, err)
	}

	cursor := req.Cursor
	if len(rows) > 0 {
		cursor = rows[len(rows)-1].Seq
	}
	if rows == nil {
		rows = []models.Row{}
	}

	return models.PullResponse{
		Rows:       rows,
		Checkpoint: models.PullCheckpoint{Cursor: cursor, PulledAt: pulledAt},
		HasMore:    hasMore,
	}, nil
}

// resolveScope builds the caller's scope. Trainers see their enrolled
// athletes; athletes see themselves only.
func (s *syncService) resolveScope(ctx context.Context, userID string, role models.Role) (models.Scope, error) {
	scope := models.Scope{UserID: userID, Role: role}

	switch role {
	case models.RoleAthlete:
		return scope, nil
	case models.RoleTrainer:
		athletes, err := s.roster.AthletesOf(ctx, userID)
		if err != nil {
			return models.Scope{}, fmt.Errorf("resolve roster of %s: %w", userID, err)
		}
		scope.AthleteIDs = athletes
		return scope, nil
	default:
		return models.Scope{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}
