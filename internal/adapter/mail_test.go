// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"
)

type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*mail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func resetEmail() models.Email {
	return models.Email{
		To:      []string{"alice@example.com"},
		Subject: "Password Reset Request",
		Body:    "To reset your password, visit the following link",
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	sender := &fakeSender{}
	m := newSMTPMailer(sender, "noreply@example.com", logger.Nop())

	require.NoError(t, m.Send(context.Background(), resetEmail()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"noreply@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Password Reset Request"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "To reset your password")
}

func TestSMTPMailer_ExplicitFrom(t *testing.T) {
	sender := &fakeSender{}
	m := newSMTPMailer(sender, "noreply@example.com", logger.Nop())

	email := resetEmail()
	email.From = "admin@example.com"
	require.NoError(t, m.Send(context.Background(), email))

	assert.Equal(t, []string{"admin@example.com"}, sender.sent[0].GetHeader("From"))
}

func TestSMTPMailer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		email   models.Email
		sendErr error
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "no recipients",
			from:    "noreply@example.com",
			email:   models.Email{Subject: "x"},
			wantErr: ErrNoRecipients,
		},
		{
			name:    "no sender",
			email:   resetEmail(),
			wantErr: ErrMailNotComposed,
		},
		{
			name:    "transport failure",
			from:    "noreply@example.com",
			email:   resetEmail(),
			sendErr: errors.New("535 authentication failed"),
			wantErr: ErrMailNotSent,
		},
		{
			name:  "cancelled context",
			from:  "noreply@example.com",
			email: resetEmail(),
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}
			sender := &fakeSender{err: tt.sendErr}
			m := newSMTPMailer(sender, tt.from, logger.Nop())

			err := m.Send(ctx, tt.email)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer(logger.Nop())

	assert.NoError(t, m.Send(context.Background(), resetEmail()))
	assert.ErrorIs(t, m.Send(context.Background(), models.Email{}), ErrNoRecipients)
}

func TestNewMailer(t *testing.T) {
	_, isLog := NewMailer(config.Mail{}, logger.Nop()).(*logMailer)
	assert.True(t, isLog)

	smtp, isSMTP := NewMailer(config.Mail{
		Server:   "smtp.example.com",
		Port:     587,
		Username: "blog@example.com",
		Password: "secret",
	}, logger.Nop()).(*smtpMailer)
	require.True(t, isSMTP)
	assert.Equal(t, "blog@example.com", smtp.from)

	dialer, ok := smtp.sender.(*mail.Dialer)
	require.True(t, ok)
	assert.Equal(t, mail.MandatoryStartTLS, dialer.StartTLSPolicy)
}
