// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client identity settings.
type ClientApp struct {
	// HashKey signs push batches. Empty disables signing.
	HashKey string
	// AccessToken is the bearer token; user id and role are read from it.
	AccessToken string
	// LogFile is the client log destination.
	LogFile string
}

// ClientAdapter holds the remote endpoint address and request timeout.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientDB is the local SQLite database file.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientSync configures the sync engine.
type ClientSync struct {
	Timeout       time.Duration
	LockTTL       time.Duration
	PushBatchSize int
	PullPageSize  int
}

// ClientWorkers configures the background sync job.
type ClientWorkers struct {
	SyncInterval time.Duration
}

// ClientConfig is the client-side view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
}

// GetClientConfig loads env and the optional JSON file at jsonPath, maps
// the fields the client uses and validates them. Flags are owned by the
// CLI, so only jsonPath comes from the command line.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSONFile(jsonPath).
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		dsn = defaultClientDBPath
	}

	return &ClientConfig{
		App: ClientApp{
			HashKey:     cfg.App.HashKey,
			AccessToken: cfg.App.AccessToken,
			LogFile:     cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: dsn},
		},
		Sync: ClientSync{
			Timeout:       cfg.Sync.Timeout,
			LockTTL:       cfg.Sync.LockTTL,
			PushBatchSize: cfg.Sync.PushBatchSize,
			PullPageSize:  cfg.Sync.PullPageSize,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
}
