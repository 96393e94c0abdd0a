package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

// logMailer writes mail to the log instead of delivering it. It stands in
// for the SMTP mailer in development setups without mail credentials.
type logMailer struct {
	logger *logger.Logger
}

func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, email models.Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}

	logger.FromContext(ctx).Warn().
		Str("func", "*logMailer.Send").
		Strs("to", email.To).
		Str("subject", email.Subject).
		Str("body", email.Body).
		Msg("smtp is not configured, mail was only logged")

	return nil
}

// NewMailer returns the SMTP mailer when cfg carries credentials and the
// logging mailer otherwise.
func NewMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	if cfg.Configured() {
		return NewSMTPMailer(cfg, logger)
	}

	logger.Warn().Msg("EMAIL_USER / EMAIL_PASS not set, password reset mail will be logged instead of sent")
	return NewLogMailer(logger)
}
