// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/adapter"
	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/internal/store"
	"github.com/MKhiriev/go-fit-sync/internal/tui"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/models"
)

var ErrNoAccessToken = errors.New("no access token configured")

// session is what a command runs against.
type session struct {
	userID string
	role   models.Role

	rows service.ClientRowService
	sync service.ClientSyncService
	job  service.ClientSyncJob

	// card runs the interactive sync card.
	card func(ctx context.Context) error

	workers config.ClientWorkers
	logger  *logger.Logger
	close   func() error
}

type sessionOpener func(ctx context.Context, configPath string, build models.AppBuildInfo) (*session, error)

// openSession loads the client config and wires the local store, the
// remote endpoint and the client services.
func openSession(ctx context.Context, configPath string, build models.AppBuildInfo) (*session, error) {
	cfg, err := config.GetClientConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.App.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	userID, role, err := utils.ParseIdentityFromJWT(cfg.App.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("read identity from access token: %w", err)
	}

	log := logger.NewClientLogger("fitsync", cfg.App.LogFile).WithUser(userID)

	remote, err := adapter.NewHTTPRemoteEndpoint(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create remote endpoint: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	services, err := service.NewClientServices(ctx, storages, remote, userID, cfg.Sync, log)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	ui := tui.New(services, build, log)

	return &session{
		userID:  userID,
		role:    role,
		rows:    services.RowService,
		sync:    services.SyncService,
		job:     services.SyncJob,
		workers: cfg.Workers,
		logger:  log,
		card: func(ctx context.Context) error {
			return ui.RunSyncCard(ctx, userID, role)
		},
		close: func() error {
			services.SyncService.Wait()
			return storages.Close()
		},
	}, nil
}
