package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidPushRequest  = errors.New("invalid push request")
	ErrInvalidPullRequest  = errors.New("invalid pull request")
	ErrInvalidChangeRecord = errors.New("invalid change record")
	ErrInvalidRosterEntry  = errors.New("invalid roster entry")
	ErrInvalidLocalWrite   = errors.New("invalid local write")
	ErrInvalidVersion      = errors.New("row_version must equal base_version + 1")
	ErrInvalidPayload      = errors.New("payload must be a JSON object")
	ErrDuplicateChangeID   = errors.New("duplicate change id in batch")
	ErrDuplicateRowVersion = errors.New("duplicate (entity_type, entity_id, row_version) in batch")
)
