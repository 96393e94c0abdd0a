package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	"gopkg.in/mail.v2"
)

const smtpTimeout = 10 * time.Second

// messageSender is the part of *mail.Dialer used by smtpMailer.
type messageSender interface {
	DialAndSend(m ...*mail.Message) error
}

type smtpMailer struct {
	sender messageSender
	from   string
	logger *logger.Logger
}

// NewSMTPMailer constructs a [Mailer] that opens one SMTP connection per
// message using the credentials in cfg. STARTTLS is mandatory unless
// cfg.UseTLS is explicitly false.
func NewSMTPMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	dialer := mail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	dialer.Timeout = smtpTimeout
	if cfg.TLSEnabled() {
		dialer.StartTLSPolicy = mail.MandatoryStartTLS
	} else {
		dialer.StartTLSPolicy = mail.NoStartTLS
	}

	from := cfg.Sender
	if from == "" {
		from = cfg.Username
	}

	logger.Debug().
		Str("host", cfg.Server).
		Int("port", cfg.Port).
		Bool("tls", cfg.TLSEnabled()).
		Msg("creating smtp mailer")

	return newSMTPMailer(dialer, from, logger)
}

func newSMTPMailer(sender messageSender, from string, logger *logger.Logger) *smtpMailer {
	return &smtpMailer{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

func (m *smtpMailer) Send(ctx context.Context, email models.Email) error {
	log := logger.FromContext(ctx)

	msg, err := composeMessage(email, m.from)
	if err != nil {
		log.Err(err).Str("func", "*smtpMailer.Send").Msg("failed to compose mail")
		return err
	}

	// DialAndSend does not take a context; bail out before dialing if the
	// request is already gone.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMailNotSent, err)
	}

	if err := m.sender.DialAndSend(msg); err != nil {
		log.Err(err).
			Str("func", "*smtpMailer.Send").
			Strs("to", email.To).
			Str("subject", email.Subject).
			Msg("failed to send mail")
		return fmt.Errorf("%w: %w", ErrMailNotSent, err)
	}

	log.Info().
		Str("func", "*smtpMailer.Send").
		Strs("to", email.To).
		Str("subject", email.Subject).
		Msg("mail sent")

	return nil
}

func composeMessage(email models.Email, defaultFrom string) (*mail.Message, error) {
	if len(email.To) == 0 {
		return nil, ErrNoRecipients
	}

	from := email.From
	if from == "" {
		from = defaultFrom
	}
	if from == "" {
		return nil, fmt.Errorf("%w: no sender address", ErrMailNotComposed)
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	return msg, nil
}
