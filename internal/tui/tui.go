// Package tui renders the terminal sync card: the current sync status,
// the pending change count, a "sync now" action and the details of the
// last failure.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/models"
)

type TUI struct {
	rows  service.ClientRowService
	sync  service.ClientSyncService
	build models.AppBuildInfo

	logger *logger.Logger
}

func New(services *service.ClientServices, build models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		rows:   services.RowService,
		sync:   services.SyncService,
		build:  build,
		logger: logger,
	}
}

// RunSyncCard shows the sync card for userID until the user quits.
func (t *TUI) RunSyncCard(ctx context.Context, userID string, role models.Role) error {
	model := newCardModel(ctx, t.rows, t.sync, userID, role, t.build)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("sync card: %w", err)
	}

	// a pass started from the card finishes before the process exits
	t.sync.Wait()
	return nil
}
