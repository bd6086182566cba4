// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	defaultServerAddress      = "localhost:8080"
	defaultRequestTimeout     = 15 * time.Second
	defaultMaxPullPage        = 500
	defaultSyncTimeout        = 2 * time.Minute
	defaultLockTTL            = 60 * time.Second
	defaultPushBatchSize      = 100
	defaultPullPageSize       = 200
	defaultSyncInterval       = 5 * time.Minute
	defaultReceiptRetention   = 30 * 24 * time.Hour
	defaultCompactionInterval = time.Hour
	defaultClientDBPath       = "fitsync.db"
	defaultTokenIssuer        = "fitsync"
)

// configBuilder collects partial configs in priority order. mergo only
// fills zero fields, so the first source that sets a field wins.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagCfg)
	return b
}

// withJSON loads the file named by any earlier source.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	return b.withJSONFile(jsonPath)
}

// withJSONFile loads path when it is not empty.
func (b *configBuilder) withJSONFile(path string) *configBuilder {
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

// withDefaults must be the last step.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenIssuer: defaultTokenIssuer,
		},
		Server: Server{
			HTTPAddress:    defaultServerAddress,
			RequestTimeout: defaultRequestTimeout,
			MaxPullPage:    defaultMaxPullPage,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://" + defaultServerAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Sync: Sync{
			Timeout:       defaultSyncTimeout,
			LockTTL:       defaultLockTTL,
			PushBatchSize: defaultPushBatchSize,
			PullPageSize:  defaultPullPageSize,
		},
		Workers: Workers{
			SyncInterval:       defaultSyncInterval,
			ReceiptRetention:   defaultReceiptRetention,
			CompactionInterval: defaultCompactionInterval,
		},
	})
	return b
}
