package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/models"
)

// ClientSync keeps a client sync job running for one identity while ctx
// is alive.
type ClientSync struct {
	job      service.ClientSyncJob
	userID   string
	role     models.Role
	interval time.Duration

	logger *logger.Logger
}

func NewClientSync(job service.ClientSyncJob, userID string, role models.Role, interval time.Duration, logger *logger.Logger) *ClientSync {
	return &ClientSync{job: job, userID: userID, role: role, interval: interval, logger: logger}
}

func (w *ClientSync) Run(ctx context.Context) {
	w.job.Start(ctx, w.userID, w.role, w.interval)
	<-ctx.Done()
	w.job.Stop()

	w.logger.Info().Str("func", "*ClientSync.Run").Str("user_id", w.userID).Msg("background sync stopped")
}
