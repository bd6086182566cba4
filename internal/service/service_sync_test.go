package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/mock"
	"github.com/MKhiriev/go-fit-sync/internal/policy"
	"github.com/MKhiriev/go-fit-sync/models"
)

func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller) (*syncService, *mock.MockSyncRowRepository, *mock.MockRosterRepository) {
	t.Helper()

	rows := mock.NewMockSyncRowRepository(ctrl)
	roster := mock.NewMockRosterRepository(ctrl)
	svc := NewSyncService(rows, roster, policy.Rules{}, config.Server{MaxPullPage: 50}, logger.Nop()).(*syncService)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }

	return svc, rows, roster
}

func TestSyncService_Push_AthleteScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, rows, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	records := []models.ChangeRecord{{ID: "c1", EntityType: models.EntityWorkoutLogs, EntityID: "w1", OwnerID: "a1"}}
	want := models.PushResponse{Accepted: []models.AcceptedChange{{ChangeID: "c1", RowVersion: 1, Seq: 7}}}

	rows.EXPECT().
		ApplyPush(ctx, models.Scope{UserID: "a1", Role: models.RoleAthlete}, records, policy.Rules{}).
		Return(want, nil)

	got, err := svc.Push(ctx, "a1", models.RoleAthlete, models.PushRequest{PushID: "p1", Records: records})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSyncService_Push_TrainerScopeFromRoster(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, rows, roster := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	roster.EXPECT().AthletesOf(ctx, "t1").Return([]string{"a1", "a2"}, nil)
	rows.EXPECT().
		ApplyPush(ctx, models.Scope{UserID: "t1", Role: models.RoleTrainer, AthleteIDs: []string{"a1", "a2"}}, gomock.Any(), gomock.Any()).
		Return(models.PushResponse{}, nil)

	_, err := svc.Push(ctx, "t1", models.RoleTrainer, models.PushRequest{PushID: "p1"})
	require.NoError(t, err)
}

func TestSyncService_Push_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown role", func(t *testing.T) {
		svc, _, _ := newTestSyncSvc(t, gomock.NewController(t))
		_, err := svc.Push(ctx, "x", "coach", models.PushRequest{})
		assert.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("roster lookup fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, roster := newTestSyncSvc(t, ctrl)
		dbErr := errors.New("db down")
		roster.EXPECT().AthletesOf(ctx, "t1").Return(nil, dbErr)

		_, err := svc.Push(ctx, "t1", models.RoleTrainer, models.PushRequest{})
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("repository fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, rows, _ := newTestSyncSvc(t, ctrl)
		dbErr := errors.New("serialization failure")
		rows.EXPECT().ApplyPush(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(models.PushResponse{}, dbErr)

		_, err := svc.Push(ctx, "a1", models.RoleAthlete, models.PushRequest{PushID: "p9"})
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "p9")
	})
}

func TestSyncService_Pull(t *testing.T) {
	ctx := context.Background()
	scope := models.Scope{UserID: "a1", Role: models.RoleAthlete}

	t.Run("cursor follows last row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, rows, _ := newTestSyncSvc(t, ctrl)
		page := []models.Row{{EntityID: "w1", Seq: 11}, {EntityID: "w2", Seq: 14}}
		rows.EXPECT().PullSince(ctx, scope, int64(10), 2).Return(page, true, nil)

		resp, err := svc.Pull(ctx, "a1", models.RoleAthlete, models.PullRequest{Cursor: 10, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, page, resp.Rows)
		assert.True(t, resp.HasMore)
		assert.Equal(t, int64(14), resp.Checkpoint.Cursor)
		assert.Equal(t, svc.now(), resp.Checkpoint.PulledAt)
	})

	t.Run("empty page keeps cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, rows, _ := newTestSyncSvc(t, ctrl)
		rows.EXPECT().PullSince(ctx, scope, int64(10), 50).Return(nil, false, nil)

		resp, err := svc.Pull(ctx, "a1", models.RoleAthlete, models.PullRequest{Cursor: 10})
		require.NoError(t, err)
		assert.NotNil(t, resp.Rows)
		assert.Empty(t, resp.Rows)
		assert.Equal(t, int64(10), resp.Checkpoint.Cursor)
	})

	t.Run("limit clamped to max page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, rows, _ := newTestSyncSvc(t, ctrl)
		rows.EXPECT().PullSince(ctx, scope, int64(0), 50).Return(nil, false, nil)

		_, err := svc.Pull(ctx, "a1", models.RoleAthlete, models.PullRequest{Limit: 1000})
		require.NoError(t, err)
	})

	t.Run("repository fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, rows, _ := newTestSyncSvc(t, ctrl)
		dbErr := errors.New("timeout")
		rows.EXPECT().PullSince(ctx, scope, int64(0), 50).Return(nil, false, dbErr)

		_, err := svc.Pull(ctx, "a1", models.RoleAthlete, models.PullRequest{})
		assert.ErrorIs(t, err, dbErr)
	})
}
