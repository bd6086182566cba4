package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-sync/internal/mock"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

func validPushRequest() models.PushRequest {
	return models.PushRequest{
		PushID: "p1",
		Records: []models.ChangeRecord{{
			ID:             "c1",
			UserID:         "a1",
			EntityType:     models.EntityWorkoutLogs,
			EntityID:       "w1",
			OwnerID:        "a1",
			Operation:      models.OperationInsert,
			Payload:        json.RawMessage(`{"km": 5}`),
			LocalTimestamp: time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC),
			BaseVersion:    0,
			RowVersion:     1,
		}},
	}
}

func TestSyncValidationService(t *testing.T) {
	ctx := context.Background()

	t.Run("valid push reaches inner service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mock.NewMockSyncService(ctrl)
		svc := NewSyncValidationService(validators.NewSyncValidator()).Wrap(inner)

		req := validPushRequest()
		inner.EXPECT().Push(ctx, "a1", models.RoleAthlete, req).Return(models.PushResponse{}, nil)

		_, err := svc.Push(ctx, "a1", models.RoleAthlete, req)
		require.NoError(t, err)
	})

	t.Run("empty push is rejected", func(t *testing.T) {
		svc := NewSyncValidationService(validators.NewSyncValidator()).Wrap(mock.NewMockSyncService(gomock.NewController(t)))
		_, err := svc.Push(ctx, "a1", models.RoleAthlete, models.PushRequest{PushID: "p1"})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("bad version arithmetic is rejected", func(t *testing.T) {
		svc := NewSyncValidationService(validators.NewSyncValidator()).Wrap(mock.NewMockSyncService(gomock.NewController(t)))
		req := validPushRequest()
		req.Records[0].RowVersion = 3
		_, err := svc.Push(ctx, "a1", models.RoleAthlete, req)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
		assert.ErrorIs(t, err, validators.ErrInvalidVersion)
	})

	t.Run("missing caller", func(t *testing.T) {
		svc := NewSyncValidationService(validators.NewSyncValidator()).Wrap(mock.NewMockSyncService(gomock.NewController(t)))
		_, err := svc.Pull(ctx, "", models.RoleAthlete, models.PullRequest{})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)

		_, err = svc.Pull(ctx, "a1", "coach", models.PullRequest{})
		assert.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("pull limit out of range", func(t *testing.T) {
		svc := NewSyncValidationService(validators.NewSyncValidator()).Wrap(mock.NewMockSyncService(gomock.NewController(t)))
		_, err := svc.Pull(ctx, "a1", models.RoleAthlete, models.PullRequest{Limit: 5000})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("valid pull reaches inner service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mock.NewMockSyncService(ctrl)
		svc := NewSyncValidationService(validators.NewSyncValidator()).Wrap(inner)

		req := models.PullRequest{Cursor: 4, Limit: 10}
		inner.EXPECT().Pull(ctx, "t1", models.RoleTrainer, req).Return(models.PullResponse{}, nil)

		_, err := svc.Pull(ctx, "t1", models.RoleTrainer, req)
		require.NoError(t, err)
	})
}
