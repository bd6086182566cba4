package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/models"
)

type clientRowService struct {
	rows    store.LocalRowRepository
	journal store.ChangeJournal

	logger *logger.Logger
}

func NewClientRowService(rows store.LocalRowRepository, journal store.ChangeJournal, logger *logger.Logger) ClientRowService {
	return &clientRowService{rows: rows, journal: journal, logger: logger}
}

func (c *clientRowService) Write(ctx context.Context, userID string, write models.LocalWrite) (models.RowView, error) {
	record, err := c.rows.Write(ctx, userID, write)
	if err != nil {
		return models.RowView{}, fmt.Errorf("write %s/%s: %w", write.EntityType, write.EntityID, err)
	}

	c.logger.Debug().Str("func", "*clientRowService.Write").
		Str("change_id", record.ID).
		Str("row", record.Key().String()).
		Str("operation", string(record.Operation)).
		Msg("local write journaled")

	return c.rows.Read(ctx, userID, record.Key())
}

func (c *clientRowService) Delete(ctx context.Context, userID string, key models.RowKey) (models.ChangeRecord, error) {
	record, err := c.rows.Delete(ctx, userID, key)
	if err != nil {
		return models.ChangeRecord{}, fmt.Errorf("delete %s: %w", key, err)
	}

	c.logger.Debug().Str("func", "*clientRowService.Delete").
		Str("change_id", record.ID).
		Str("row", key.String()).
		Msg("local delete journaled")

	return record, nil
}

func (c *clientRowService) Read(ctx context.Context, userID string, key models.RowKey) (models.RowView, error) {
	return c.rows.Read(ctx, userID, key)
}

func (c *clientRowService) List(ctx context.Context, userID string, entityType models.EntityType) ([]models.RowView, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity type %q", store.ErrInvalidRow, entityType)
	}
	return c.rows.List(ctx, userID, entityType)
}

func (c *clientRowService) PendingCount(ctx context.Context, userID string) (int, error) {
	return c.journal.PendingCount(ctx, userID)
}
