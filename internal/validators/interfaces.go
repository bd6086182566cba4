// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks sync requests before they reach the services.
//
// Structural rules live in `validate` struct tags on the models and are
// evaluated by go-playground/validator; cross-field and cross-record rules
// (version arithmetic, payload shape, duplicates inside a batch) are
// checked by hand afterwards.
package validators

import "context"

// Validator validates an input value. When fields are given, only those
// struct fields are checked.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
