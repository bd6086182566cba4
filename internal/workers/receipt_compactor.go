package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/store"
)

const (
	defaultReceiptRetention   = 30 * 24 * time.Hour
	defaultCompactionInterval = time.Hour
)

// ReceiptCompactor prunes applied-change receipts older than the retention
// window. A client retrying a push older than that gets a stale conflict
// instead of a replayed acknowledgement.
type ReceiptCompactor struct {
	receipts  store.ReceiptRepository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time

	logger *logger.Logger
}

func NewReceiptCompactor(receipts store.ReceiptRepository, cfg config.Workers, logger *logger.Logger) *ReceiptCompactor {
	retention := cfg.ReceiptRetention
	if retention <= 0 {
		retention = defaultReceiptRetention
	}
	interval := cfg.CompactionInterval
	if interval <= 0 {
		interval = defaultCompactionInterval
	}

	return &ReceiptCompactor{
		receipts:  receipts,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

func (c *ReceiptCompactor) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info().Str("func", "*ReceiptCompactor.Run").
		Dur("retention", c.retention).
		Dur("interval", c.interval).
		Msg("receipt compaction started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Str("func", "*ReceiptCompactor.Run").Msg("receipt compaction stopped")
			return
		case <-ticker.C:
			c.compact(ctx)
		}
	}
}

func (c *ReceiptCompactor) compact(ctx context.Context) {
	olderThan := c.now().Add(-c.retention)

	pruned, err := c.receipts.PruneReceipts(ctx, olderThan)
	if err != nil {
		c.logger.Err(err).Str("func", "*ReceiptCompactor.compact").Msg("failed to prune receipts")
		return
	}
	if pruned > 0 {
		c.logger.Info().Str("func", "*ReceiptCompactor.compact").
			Int64("pruned", pruned).
			Time("older_than", olderThan).
			Msg("receipts pruned")
	}
}
