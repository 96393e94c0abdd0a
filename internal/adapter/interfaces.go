// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the blog server.
//
// The primary abstraction is [Mailer], which decouples the password reset
// flow from the mail transport. The package ships an SMTP implementation
// ([NewSMTPMailer]) and a logging implementation ([NewLogMailer]) used when
// no SMTP credentials are configured.
//
// Error values defined in errors.go let callers use [errors.Is] without
// inspecting transport-level errors.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer delivers outbound email.
type Mailer interface {
	// Send delivers email. When email.From is empty the configured sender
	// address is used. Returns an error wrapping [ErrMailNotSent] when the
	// message could not be handed to the transport.
	Send(ctx context.Context, email models.Email) error
}
