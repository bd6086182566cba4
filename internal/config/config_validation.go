// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"github.com/MKhiriev/go-fit-sync/models"
)

func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxPullPage <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.ReceiptRetention <= 0 || cfg.Workers.CompactionInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	// the journal must survive restarts
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Timeout <= 0 || cfg.Sync.LockTTL <= 0 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.PushBatchSize <= 0 || cfg.Sync.PushBatchSize > models.MaxPushBatchSize {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.PullPageSize <= 0 || cfg.Sync.PullPageSize > models.MaxPullPageSize {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
