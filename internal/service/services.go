package service

import (
	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/policy"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	RosterService  RosterService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	syncService := NewSyncService(storages.SyncRowRepository, storages.RosterRepository, policy.Rules{}, cfg.Server, logger)
	syncService = NewSyncValidationService(validators.NewSyncValidator()).Wrap(syncService)

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		SyncService:    syncService,
		RosterService:  NewRosterService(storages.RosterRepository, validators.NewSyncValidator(), logger),
		AppInfoService: appInfo,
	}, nil
}
