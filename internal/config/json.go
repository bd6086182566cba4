// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		HashKey      string `json:"hash_key"`
		AccessToken  string `json:"access_token"`
		LogFile      string `json:"log_file"`
		Version      string `json:"version"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxPullPage    int      `json:"max_pull_page"`
	} `json:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Sync struct {
		Timeout       Duration `json:"timeout"`
		LockTTL       Duration `json:"lock_ttl"`
		PushBatchSize int      `json:"push_batch_size"`
		PullPageSize  int      `json:"pull_page_size"`
	} `json:"sync"`

	Workers struct {
		SyncInterval       Duration `json:"sync_interval"`
		ReceiptRetention   Duration `json:"receipt_retention"`
		CompactionInterval Duration `json:"compaction_interval"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: j.App.TokenSignKey,
			TokenIssuer:  j.App.TokenIssuer,
			HashKey:      j.App.HashKey,
			AccessToken:  j.App.AccessToken,
			LogFile:      j.App.LogFile,
			Version:      j.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			MaxPullPage:    j.Server.MaxPullPage,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Sync: Sync{
			Timeout:       time.Duration(j.Sync.Timeout),
			LockTTL:       time.Duration(j.Sync.LockTTL),
			PushBatchSize: j.Sync.PushBatchSize,
			PullPageSize:  j.Sync.PullPageSize,
		},
		Workers: Workers{
			SyncInterval:       time.Duration(j.Workers.SyncInterval),
			ReceiptRetention:   time.Duration(j.Workers.ReceiptRetention),
			CompactionInterval: time.Duration(j.Workers.CompactionInterval),
		},
	}, nil
}

// Duration accepts "30s"-style strings or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
