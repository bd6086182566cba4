// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fit-sync/internal/adapter"
	"github.com/MKhiriev/go-fit-sync/internal/app"
)

// mapAdapterError translates an adapter error into a service error. Every
// failure maps either to ErrTransport (nothing was received) or to a
// rejection carrying the remote message.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrTransport):
		return fmt.Errorf("%w: %w", ErrTransport, err)

	case errors.Is(err, adapter.ErrServiceUnavailable), errors.Is(err, adapter.ErrBadGateway):
		return fmt.Errorf("%w: %s", ErrTransport, msg)

	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgTokenIsExpired {
			return ErrTokenIsExpired
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrBadRequest):
		if msg == app.MsgInvalidDataProvided || strings.HasPrefix(msg, app.MsgInvalidDataProvided) {
			return fmt.Errorf("%w: %w: %s", ErrRemoteRejected, ErrInvalidDataProvided, msg)
		}
	}

	return fmt.Errorf("%w: %w", ErrRemoteRejected, err)
}

// extractBody returns the part after the last "sentinel: " prefix.
func extractBody(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		adapter.ErrBadRequest,
		adapter.ErrUnauthorized,
		adapter.ErrForbidden,
		adapter.ErrNotFound,
		adapter.ErrConflict,
		adapter.ErrBadGateway,
		adapter.ErrInternalServerError,
		adapter.ErrServiceUnavailable,
	} {
		prefix := sentinel.Error() + ": "
		if idx := strings.LastIndex(msg, prefix); idx != -1 {
			return msg[idx+len(prefix):]
		}
	}
	return msg
}
