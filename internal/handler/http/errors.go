// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrUnsafeRedirect is returned when a "next" target points outside the
	// host that served the request.
	ErrUnsafeRedirect = errors.New("redirect target is not on this host")

	// ErrInvalidPostID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidPostID = errors.New("invalid post id")

	// ErrMalformedForm is returned when the request body cannot be parsed as
	// a form.
	ErrMalformedForm = errors.New("malformed form submission")

	// ErrTemplateNotFound is returned when a page name has no parsed template.
	ErrTemplateNotFound = errors.New("template not found")
)
