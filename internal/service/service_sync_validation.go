package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-sync/internal/validators"
	"github.com/MKhiriev/go-fit-sync/models"
)

// SyncServiceWrapper decorates a SyncService.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}

type syncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

// NewSyncValidationService returns a wrapper that validates requests
// before they reach the wrapped SyncService.
func NewSyncValidationService(validator validators.Validator) SyncServiceWrapper {
	return &syncValidationService{validator: validator}
}

func (v *syncValidationService) Wrap(inner SyncService) SyncService {
	return &syncValidationService{inner: inner, validator: v.validator}
}

func (v *syncValidationService) Push(ctx context.Context, userID string, role models.Role, req models.PushRequest) (models.PushResponse, error) {
	if err := v.checkCaller(userID, role); err != nil {
		return models.PushResponse{}, err
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Push(ctx, userID, role, req)
}

func (v *syncValidationService) Pull(ctx context.Context, userID string, role models.Role, req models.PullRequest) (models.PullResponse, error) {
	if err := v.checkCaller(userID, role); err != nil {
		return models.PullResponse{}, err
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Pull(ctx, userID, role, req)
}

func (v *syncValidationService) checkCaller(userID string, role models.Role) error {
	if userID == "" {
		return fmt.Errorf("%w: no user id", ErrInvalidDataProvided)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return nil
}
