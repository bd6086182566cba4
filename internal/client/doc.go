// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the fitsync command line.
//
// Every command opens the local store, builds the client services for the
// identity carried by the configured access token and runs against them.
// Only sync, card and daemon talk to the remote endpoint.
package client
