package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-fit-sync/models"
)

// SyncValidator validates push, pull and roster requests.
type SyncValidator struct {
	validate *validator.Validate
}

// NewSyncValidator returns a SyncValidator with the entity_type tag
// registered.
func NewSyncValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("entity_type", func(fl validator.FieldLevel) bool {
		return models.EntityType(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("register entity_type validation: %v", err))
	}
	return &SyncValidator{validate: v}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PushRequest:
		return v.validatePushRequest(value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(*value, fields...)

	case models.PullRequest:
		return v.structural(value, ErrInvalidPullRequest, fields...)
	case *models.PullRequest:
		return v.structural(*value, ErrInvalidPullRequest, fields...)

	case models.ChangeRecord:
		return v.validateChangeRecord(value, fields...)
	case *models.ChangeRecord:
		return v.validateChangeRecord(*value, fields...)

	case models.LocalWrite:
		return v.structural(value, ErrInvalidLocalWrite, fields...)
	case *models.LocalWrite:
		return v.structural(*value, ErrInvalidLocalWrite, fields...)
	case models.RosterEntry:
		return v.structural(value, ErrInvalidRosterEntry, fields...)
	case *models.RosterEntry:
		return v.structural(*value, ErrInvalidRosterEntry, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validatePushRequest(req models.PushRequest, fields ...string) error {
	if err := v.structural(req, ErrInvalidPushRequest, fields...); err != nil {
		return err
	}
	if len(fields) > 0 && !contains(fields, "Records") {
		return nil
	}

	ids := make(map[string]struct{}, len(req.Records))
	versions := make(map[string]struct{}, len(req.Records))
	for i, record := range req.Records {
		if err := checkRecord(record); err != nil {
			return fmt.Errorf("%w: records[%d]: %w", ErrInvalidPushRequest, i, err)
		}

		if _, ok := ids[record.ID]; ok {
			return fmt.Errorf("%w: records[%d]: %w", ErrInvalidPushRequest, i, ErrDuplicateChangeID)
		}
		ids[record.ID] = struct{}{}

		key := fmt.Sprintf("%s/%d", record.Key(), record.RowVersion)
		if _, ok := versions[key]; ok {
			return fmt.Errorf("%w: records[%d]: %w", ErrInvalidPushRequest, i, ErrDuplicateRowVersion)
		}
		versions[key] = struct{}{}
	}

	return nil
}

func (v *SyncValidator) validateChangeRecord(record models.ChangeRecord, fields ...string) error {
	if err := v.structural(record, ErrInvalidChangeRecord, fields...); err != nil {
		return err
	}
	if len(fields) > 0 {
		return nil
	}
	if err := checkRecord(record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChangeRecord, err)
	}
	return nil
}

// structural runs the struct tags, restricted to fields when given.
func (v *SyncValidator) structural(obj any, sentinel error, fields ...string) error {
	var err error
	if len(fields) > 0 {
		for _, field := range fields {
			if !hasField(obj, field) {
				return fmt.Errorf("%w: %s", ErrUnknownField, field)
			}
		}
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return fmt.Errorf("%w: %s failed on %q", sentinel, first.Namespace(), first.Tag())
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// checkRecord applies the rules struct tags cannot express.
func checkRecord(record models.ChangeRecord) error {
	if record.RowVersion != record.BaseVersion+1 {
		return ErrInvalidVersion
	}
	if record.IsDelete() {
		return nil
	}

	trimmed := bytes.TrimSpace(record.Payload)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return ErrInvalidPayload
	}
	return nil
}

func hasField(obj any, name string) bool {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	_, ok := t.FieldByName(name)
	return ok
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
