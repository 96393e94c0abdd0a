// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides per-form validation schemas for the blog's
// HTML forms.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - FormErrors: field name to messages map returned on failure. It
//     matches [ErrInvalidForm] with errors.Is and is rendered next to the
//     offending inputs.
//
// Validation is independent of the transport: handlers decode a request into
// a models.*Form value and pass it to a Validator.
package validators

import "context"

// Validator checks a decoded models.*Form value. With field names given only
// those fields are checked, which lets a handler validate part of a form
// (e.g. a new post's title and content without its version). A failure is
// returned as FormErrors; an unknown form type or field name is a plain error.
type Validator interface {
	Validate(ctx context.Context, form any, fields ...string) error
}
