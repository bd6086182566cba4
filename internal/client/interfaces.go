// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Execute parses the command line and runs the selected command until it
	// finishes or ctx is cancelled.
	Execute(ctx context.Context) error
}
