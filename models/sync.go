// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncCheckpoint is the per-user pull position.
//
// Cursor is the remote change sequence already applied locally and
// LastPulledAt the remote clock at that pull. Neither moves backward.
type SyncCheckpoint struct {
	UserID       string     `json:"user_id"`
	Cursor       int64      `json:"cursor"`
	LastPulledAt *time.Time `json:"last_pulled_at,omitempty"`
	LastPushedAt *time.Time `json:"last_pushed_at,omitempty"`
}

// SyncResult is returned by a single sync pass.
type SyncResult struct {
	Success     bool     `json:"success"`
	PushedCount int      `json:"pushed_count"`
	PulledCount int      `json:"pulled_count"`
	Message     string   `json:"message"`
	Errors      []string `json:"errors,omitempty"`
}

// StatusKind is the coarse state of the sync subsystem.
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusSyncing StatusKind = "syncing"
	StatusError   StatusKind = "error"
	StatusSuccess StatusKind = "success"
)

// SyncStatus is the persisted, process-wide sync status shown by the UI.
type SyncStatus struct {
	Status      StatusKind `json:"status"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
	LastError   *string    `json:"last_error,omitempty"`
	TotalSynced int64      `json:"total_synced"`
}
