package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/models"
)

type rosterRepository struct {
	*DB
	logger *logger.Logger
}

func NewRosterRepository(db *DB, logger *logger.Logger) RosterRepository {
	return &rosterRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *rosterRepository) AthletesOf(ctx context.Context, trainerID string) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAthletesOfTrainer, trainerID)
	if err != nil {
		log.Err(err).
			Str("func", "rosterRepository.AthletesOf").
			Str("trainer_id", trainerID).
			Msg("failed to query athletes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	athletes := make([]string, 0)
	for rows.Next() {
		var athleteID string
		if err = rows.Scan(&athleteID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		athletes = append(athletes, athleteID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return athletes, nil
}

func (r *rosterRepository) ListRoster(ctx context.Context, trainerID string) ([]models.RosterEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getRoster, trainerID)
	if err != nil {
		log.Err(err).
			Str("func", "rosterRepository.ListRoster").
			Str("trainer_id", trainerID).
			Msg("failed to query roster")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.RosterEntry, 0)
	for rows.Next() {
		var (
			entry      models.RosterEntry
			enrolledAt time.Time
		)
		if err = rows.Scan(&entry.TrainerID, &entry.AthleteID, &enrolledAt); err != nil {
			log.Err(err).
				Str("func", "rosterRepository.ListRoster").
				Str("trainer_id", trainerID).
				Msg("failed to scan roster row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entry.EnrolledAt = enrolledAt.UTC()
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// Enroll links athleteID to trainerID. Enrolling twice keeps the original
// enrollment time.
func (r *rosterRepository) Enroll(ctx context.Context, trainerID, athleteID string) (models.RosterEntry, error) {
	var entry models.RosterEntry
	err := r.DB.QueryRowContext(ctx, enrollAthlete, trainerID, athleteID).
		Scan(&entry.TrainerID, &entry.AthleteID, &entry.EnrolledAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "rosterRepository.Enroll").
			Str("trainer_id", trainerID).
			Str("athlete_id", athleteID).
			Msg("failed to enroll athlete")
		return models.RosterEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	entry.EnrolledAt = entry.EnrolledAt.UTC()

	return entry, nil
}

type receiptRepository struct {
	*DB
}

func NewReceiptRepository(db *DB) ReceiptRepository {
	return &receiptRepository{DB: db}
}

func (r *receiptRepository) PruneReceipts(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, pruneReceipts, olderThan.UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "receiptRepository.PruneReceipts").
			Time("older_than", olderThan).
			Msg("failed to prune receipts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
