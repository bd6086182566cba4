// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntityType names a synchronized table.
type EntityType string

const (
	EntityAthleteProfiles EntityType = "athlete_profiles"
	EntityTestResults     EntityType = "test_results"
	EntityWorkoutLogs     EntityType = "workout_logs"
	EntityTrainingPlans   EntityType = "training_plans"
	EntityCalendarEvents  EntityType = "calendar_events"
	EntityTrainerProfiles EntityType = "trainer_profiles"
)

// EntityTypes lists every entity type that takes part in sync.
var EntityTypes = []EntityType{
	EntityAthleteProfiles,
	EntityTestResults,
	EntityWorkoutLogs,
	EntityTrainingPlans,
	EntityCalendarEvents,
	EntityTrainerProfiles,
}

// Valid reports whether e is a known entity type.
func (e EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if e == known {
			return true
		}
	}
	return false
}

// RowKey identifies a row across devices.
type RowKey struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
}

func (k RowKey) String() string {
	return fmt.Sprintf("%s/%s", k.EntityType, k.EntityID)
}

// Row is the server-confirmed shape of a synchronized row.
//
// UpdatedAt is the logical timestamp of the change that produced this
// version; it drives last-writer-wins decisions. Seq is the position of
// the row's latest modification in the remote change sequence.
type Row struct {
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	OwnerID    string          `json:"owner_id"`
	Fields     json.RawMessage `json:"fields,omitempty"`
	Deleted    bool            `json:"deleted"`
	RowVersion int64           `json:"row_version"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ModifiedBy string          `json:"modified_by,omitempty"`
	Seq        int64           `json:"seq,omitempty"`
}

// Key returns the row key.
func (r Row) Key() RowKey {
	return RowKey{EntityType: r.EntityType, EntityID: r.EntityID}
}

// LocalWrite is the input of a local mutation.
// An empty OwnerID means the row belongs to the writing user. The id
// limits match the ones the remote endpoint enforces on [ChangeRecord].
type LocalWrite struct {
	EntityType EntityType      `validate:"required,entity_type"`
	EntityID   string          `validate:"required,max=128"`
	OwnerID    string          `validate:"omitempty,max=128"`
	Fields     json.RawMessage
}

// RowState tells whether a locally visible row matches the server or still
// carries unconfirmed local changes.
type RowState string

const (
	RowConfirmed    RowState = "confirmed"
	RowPendingLocal RowState = "pending_local"
)

// RowView is what the Local Store returns on read: the current local state
// of a row tagged with its sync state.
//
// For RowConfirmed, Row is the server state. For RowPendingLocal, Pending
// is the newest unconfirmed change and BasedOnVersion is the server version
// it was made against.
type RowView struct {
	Row            Row
	State          RowState
	Pending        *ChangeRecord
	BasedOnVersion int64
}

// IsPending reports whether the row has unconfirmed local changes.
func (v RowView) IsPending() bool {
	return v.State == RowPendingLocal
}
