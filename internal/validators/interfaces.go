// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the services.
//
// Rules live in `validate` struct tags on the models; this package turns
// go-playground/validator failures into a [ValidationError] keyed by JSON
// field name.
package validators

import "context"

// Validator validates a struct. When fields are given only those (Go field
// names) are checked.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
