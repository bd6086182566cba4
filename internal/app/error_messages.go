// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the message strings the remote endpoint writes into
// error responses. The client adapter matches on the same strings, so both
// sides import them from here.
package app

const (
	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for failures the client cannot fix.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned for a well-formed token past its expiry.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a token cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when the verified token carries no
	// subject.
	MsgNoUserIDProvided = "no user ID provided"

	MsgUnknownRole = "unknown role"

	// MsgTrainerOnly is returned by roster endpoints called with an
	// athlete token.
	MsgTrainerOnly = "available to trainers only"

	// MsgIntegrityCheckFailed is returned when the batch hash does not
	// match its records.
	MsgIntegrityCheckFailed = "integrity check failed"

	MsgVersionIsNotSpecified = "version is not specified"

	MsgServiceUnavailable = "service temporarily unavailable"
)
