// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote sync endpoint.
//
// [RemoteEndpoint] decouples the sync engine from the protocol. The HTTP
// implementation maps status codes to the sentinel errors in errors.go so
// callers can use [errors.Is]; failures where no response arrived at all
// wrap [ErrTransport].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fit-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_endpoint_mock.go -package=mock

// RemoteEndpoint is the client side of the push/pull protocol.
type RemoteEndpoint interface {
	// SetToken stores the bearer token attached to every request.
	SetToken(token string)

	// Token returns the stored bearer token.
	Token() string

	// PushBatch sends one batch of change records and returns the
	// per-record answer. Push IDs and change IDs make retries safe.
	PushBatch(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// PullSince returns one page of rows changed after req.Cursor that the
	// caller may see.
	PullSince(ctx context.Context, req models.PullRequest) (models.PullResponse, error)
}
