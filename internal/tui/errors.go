// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-fit-sync/internal/service"
)

// humanizeSyncError shortens the engine's error messages for the card.
func humanizeSyncError(msg string) string {
	switch {
	case strings.Contains(msg, service.ErrTransport.Error()):
		return "no network or server unavailable"
	case strings.Contains(msg, service.ErrSyncInProgress.Error()):
		return "another sync is already running"
	case strings.Contains(msg, service.ErrTokenIsExpired.Error()):
		return "access token expired"
	}
	return msg
}
