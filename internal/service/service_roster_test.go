package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/mock"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

func TestRosterService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("trainer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRosterRepository(ctrl)
		svc := NewRosterService(repo, validators.NewSyncValidator(), logger.Nop())

		entries := []models.RosterEntry{{TrainerID: "t1", AthleteID: "a1"}}
		repo.EXPECT().ListRoster(ctx, "t1").Return(entries, nil)

		got, err := svc.List(ctx, "t1", models.RoleTrainer)
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("empty roster is not nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRosterRepository(ctrl)
		svc := NewRosterService(repo, validators.NewSyncValidator(), logger.Nop())
		repo.EXPECT().ListRoster(ctx, "t1").Return(nil, nil)

		got, err := svc.List(ctx, "t1", models.RoleTrainer)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("athlete is refused", func(t *testing.T) {
		svc := NewRosterService(mock.NewMockRosterRepository(gomock.NewController(t)), validators.NewSyncValidator(), logger.Nop())
		_, err := svc.List(ctx, "a1", models.RoleAthlete)
		assert.ErrorIs(t, err, ErrTrainerOnly)
	})
}

func TestRosterService_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRosterRepository(ctrl)
		svc := NewRosterService(repo, validators.NewSyncValidator(), logger.Nop())

		entry := models.RosterEntry{TrainerID: "t1", AthleteID: "a1", EnrolledAt: time.Now().UTC()}
		repo.EXPECT().Enroll(ctx, "t1", "a1").Return(entry, nil)

		got, err := svc.Enroll(ctx, "t1", models.RoleTrainer, "a1")
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	tests := []struct {
		name      string
		role      models.Role
		athleteID string
		wantErr   error
	}{
		{"athlete cannot enroll", models.RoleAthlete, "a1", ErrTrainerOnly},
		{"missing athlete", models.RoleTrainer, "", ErrInvalidDataProvided},
		{"self enrollment", models.RoleTrainer, "t1", ErrInvalidDataProvided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRosterService(mock.NewMockRosterRepository(gomock.NewController(t)), validators.NewSyncValidator(), logger.Nop())
			_, err := svc.Enroll(ctx, "t1", tt.role, tt.athleteID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("repository fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRosterRepository(ctrl)
		svc := NewRosterService(repo, validators.NewSyncValidator(), logger.Nop())
		dbErr := errors.New("db down")
		repo.EXPECT().Enroll(ctx, "t1", "a1").Return(models.RosterEntry{}, dbErr)

		_, err := svc.Enroll(ctx, "t1", models.RoleTrainer, "a1")
		assert.ErrorIs(t, err, dbErr)
	})
}
