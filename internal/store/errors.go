package store

import "errors"

// Domain errors. Match with [errors.Is].
var (
	// ErrRowNotFound is returned when a row does not exist locally or is
	// deleted.
	ErrRowNotFound = errors.New("row was not found")

	// ErrOwnerMismatch is returned when a write names a different owner than
	// the one the row already has.
	ErrOwnerMismatch = errors.New("row owner cannot be changed")

	// ErrInvalidRow is returned for writes with an unknown entity type, an
	// empty id or a payload that is not a JSON object.
	ErrInvalidRow = errors.New("invalid row")

	// ErrLockNotHeld is returned when releasing a sync lock owned by someone
	// else.
	ErrLockNotHeld = errors.New("sync lock is not held by this owner")
)

// Low-level database errors, wrapped around driver errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingPayload      = errors.New("failed to encode payload")
)
