// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Page limits enforced by the remote endpoint.
const (
	MaxPushBatchSize = 500
	MaxPullPageSize  = 1000
)

// PushRequest carries one batch of journaled changes to the remote endpoint.
// Hash is an optional HMAC of Records used for transport integrity checks.
type PushRequest struct {
	PushID  string         `json:"push_id" validate:"required"`
	Records []ChangeRecord `json:"records" validate:"required,min=1,max=500,dive"`
	Hash    string         `json:"hash,omitempty"`
}

// AcceptedChange acknowledges one pushed change.
//
// RowVersion is the version the remote endpoint assigned. Replayed is set
// when the change had already been applied by an earlier push. Overwrote is
// set when the change was applied over a newer remote version because its
// timestamp was later.
type AcceptedChange struct {
	ChangeID   string     `json:"change_id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	RowVersion int64      `json:"row_version"`
	Seq        int64      `json:"seq,omitempty"`
	Replayed   bool       `json:"replayed,omitempty"`
	Overwrote  bool       `json:"overwrote,omitempty"`
}

// ConflictReason says why the remote endpoint refused a change.
type ConflictReason string

const (
	// ConflictStale means the remote row is newer than the change.
	ConflictStale ConflictReason = "stale"
	// ConflictScope means the caller's role may not write the row.
	ConflictScope ConflictReason = "scope_violation"
	// ConflictInvalid means the record itself is malformed and can never be
	// accepted. The client assigns it to records the remote endpoint
	// refused with a bad request.
	ConflictInvalid ConflictReason = "invalid"
)

// Conflict is a per-record refusal. ServerRow is set for stale conflicts
// and carries the winning remote state.
type Conflict struct {
	ChangeID   string         `json:"change_id"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	RowVersion int64          `json:"row_version"`
	Reason     ConflictReason `json:"reason"`
	Message    string         `json:"message,omitempty"`
	ServerRow  *Row           `json:"server_row,omitempty"`
}

// PushResponse answers a [PushRequest] record by record.
type PushResponse struct {
	Accepted  []AcceptedChange `json:"accepted"`
	Conflicts []Conflict       `json:"conflicts"`
}

// PullRequest asks for rows changed after Cursor.
type PullRequest struct {
	Cursor int64 `json:"cursor" validate:"gte=0"`
	Limit  int   `json:"limit" validate:"gte=0,lte=1000"`
}

// PullResponse is one page of remote changes visible to the caller.
type PullResponse struct {
	Rows       []Row          `json:"rows"`
	Checkpoint PullCheckpoint `json:"checkpoint"`
	HasMore    bool           `json:"has_more"`
}

// PullCheckpoint is the position reached by a pull page.
type PullCheckpoint struct {
	Cursor   int64     `json:"cursor"`
	PulledAt time.Time `json:"pulled_at"`
}

// RosterEntry links a trainer with an enrolled athlete.
type RosterEntry struct {
	TrainerID  string    `json:"trainer_id"`
	AthleteID  string    `json:"athlete_id" validate:"required,max=128"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
