package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTrainerOnly           = errors.New("operation is available to trainers only")
	ErrUnknownRole           = errors.New("unknown role")
	ErrVersionIsNotSpecified = errors.New("version is not specified")

	// ErrSyncInProgress is returned when another pass holds the sync lock.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrContinuingInBackground is returned when the caller stopped waiting
	// for a pass that keeps running detached.
	ErrContinuingInBackground = errors.New("sync continuing in background")
	// ErrTransport marks failures talking to the remote endpoint.
	ErrTransport = errors.New("remote endpoint unreachable")
	// ErrRemoteRejected marks a batch the remote endpoint refused as a whole.
	ErrRemoteRejected = errors.New("remote endpoint rejected the request")
)
