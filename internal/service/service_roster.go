package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

type rosterService struct {
	roster    store.RosterRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewRosterService(roster store.RosterRepository, validator validators.Validator, logger *logger.Logger) RosterService {
	return &rosterService{roster: roster, validator: validator, logger: logger}
}

func (r *rosterService) List(ctx context.Context, trainerID string, role models.Role) ([]models.RosterEntry, error) {
	if role != models.RoleTrainer {
		return nil, ErrTrainerOnly
	}

	entries, err := r.roster.ListRoster(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list roster of %s: %w", trainerID, err)
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	return entries, nil
}

func (r *rosterService) Enroll(ctx context.Context, trainerID string, role models.Role, athleteID string) (models.RosterEntry, error) {
	if role != models.RoleTrainer {
		return models.RosterEntry{}, ErrTrainerOnly
	}
	if err := r.validator.Validate(ctx, models.RosterEntry{TrainerID: trainerID, AthleteID: athleteID}); err != nil {
		return models.RosterEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if athleteID == trainerID {
		return models.RosterEntry{}, fmt.Errorf("%w: trainer cannot enroll themself", ErrInvalidDataProvided)
	}

	entry, err := r.roster.Enroll(ctx, trainerID, athleteID)
	if err != nil {
		return models.RosterEntry{}, fmt.Errorf("enroll %s: %w", athleteID, err)
	}

	logger.FromContext(ctx).Info().Str("func", "*rosterService.Enroll").
		Str("trainer_id", trainerID).
		Str("athlete_id", athleteID).
		Msg("athlete enrolled")

	return entry, nil
}
