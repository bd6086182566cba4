// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the merged configuration shared by both binaries.
// The server reads App, Storage, Server and Workers; the client view is
// derived from it by GetClientConfig.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name of a scalar field.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Sync    Sync    `envPrefix:"SYNC_"`
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath points to an optional JSON file merged under env and flags.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// App holds identity and integrity settings.
type App struct {
	// TokenSignKey verifies HS256 access tokens on the server.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// HashKey is the HMAC key of push batches. Empty disables the check.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// AccessToken is the bearer token the client sends to the server.
	// Env: APP_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// LogFile is where the client writes its logs.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Version is reported by /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the database connection string: a Postgres URL on the server,
// an SQLite file path on the client.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds the inbound transport settings of the remote endpoint.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxPullPage caps the rows returned by one pull page.
	// Env: SERVER_MAX_PULL_PAGE
	MaxPullPage int `env:"MAX_PULL_PAGE"`
}

// Adapter holds the client's outbound transport settings.
type Adapter struct {
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the client sync engine settings.
type Sync struct {
	// Timeout bounds one whole sync pass.
	// Env: SYNC_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// LockTTL is how long a sync lock lives before another pass may
	// reclaim it.
	// Env: SYNC_LOCK_TTL
	LockTTL time.Duration `env:"LOCK_TTL"`

	// Env: SYNC_PUSH_BATCH_SIZE
	PushBatchSize int `env:"PUSH_BATCH_SIZE"`

	// Env: SYNC_PULL_PAGE_SIZE
	PullPageSize int `env:"PULL_PAGE_SIZE"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval is the period of the client background sync.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ReceiptRetention is how long the server keeps applied-change receipts.
	// Env: WORKERS_RECEIPT_RETENTION
	ReceiptRetention time.Duration `env:"RECEIPT_RETENTION"`

	// CompactionInterval is the period of the receipt pruning worker.
	// Env: WORKERS_COMPACTION_INTERVAL
	CompactionInterval time.Duration `env:"COMPACTION_INTERVAL"`
}

// GetStructuredConfig loads the server configuration. Sources are merged
// so that env beats flags and flags beat the JSON file; defaults fill
// whatever is left.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
