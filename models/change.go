// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Operation is the kind of local mutation captured by a [ChangeRecord].
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether o is one of the known operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationInsert, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// JournalStatus tracks where a journaled change is in its lifecycle.
// A record is never rewritten; only its status moves forward.
type JournalStatus string

const (
	// JournalPending records are waiting to be pushed.
	JournalPending JournalStatus = "pending"
	// JournalSynced records were acknowledged by the remote endpoint.
	JournalSynced JournalStatus = "synced"
	// JournalSuperseded records were replaced by a later local change to
	// the same entity before they were pushed.
	JournalSuperseded JournalStatus = "superseded"
	// JournalDiscarded records lost a conflict or were rejected by the
	// remote endpoint. The reason is stored next to the status.
	JournalDiscarded JournalStatus = "discarded"
)

// ChangeRecord is one immutable entry of the local change journal.
//
// RowVersion is the version the change intends to create on the remote
// endpoint, always BaseVersion+1, where BaseVersion is the last version of
// the row confirmed by the remote endpoint when the change was made.
// ID is generated on the device and doubles as the idempotency key of the
// push together with (EntityType, EntityID, RowVersion).
type ChangeRecord struct {
	ID             string          `json:"id" validate:"required"`
	UserID         string          `json:"user_id,omitempty"`
	EntityType     EntityType      `json:"entity_type" validate:"required,entity_type"`
	EntityID       string          `json:"entity_id" validate:"required,max=128"`
	OwnerID        string          `json:"owner_id" validate:"required,max=128"`
	Operation      Operation       `json:"operation" validate:"required,oneof=insert update delete"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	LocalTimestamp time.Time       `json:"local_timestamp" validate:"required"`
	RowVersion     int64           `json:"row_version" validate:"gte=1"`
	BaseVersion    int64           `json:"base_version" validate:"gte=0"`

	// Seq is the local journal position. It is not sent over the wire.
	Seq int64 `json:"-"`
	// Status is the local journal status. It is not sent over the wire.
	Status JournalStatus `json:"-"`
}

// Key returns the row key the change applies to.
func (c ChangeRecord) Key() RowKey {
	return RowKey{EntityType: c.EntityType, EntityID: c.EntityID}
}

// IsDelete reports whether the change removes the row.
func (c ChangeRecord) IsDelete() bool {
	return c.Operation == OperationDelete
}
