package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

const resetMailSubject = "Password Reset Request"

// resetService issues self-contained reset tokens. Tokens are not recorded
// anywhere and cannot be revoked one by one; rotating the secret key
// invalidates all of them.
type resetService struct {
	userRepository store.UserRepository
	mailer         adapter.Mailer

	tokenSignKey string
	tokenIssuer  string
	tokenTTL     time.Duration
	bcryptCost   int

	now func() time.Time

	logger *logger.Logger
}

func NewResetService(userRepository store.UserRepository, mailer adapter.Mailer, cfg config.App, logger *logger.Logger) ResetService {
	return &resetService{
		userRepository: userRepository,
		mailer:         mailer,
		tokenSignKey:   cfg.SecretKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenTTL:       cfg.ResetTokenTTL,
		bcryptCost:     cfg.BcryptCost,
		now:            time.Now,
		logger:         logger,
	}
}

// IssueToken signs a reset token for user valid for ttl.
func (s *resetService) IssueToken(user models.User, ttl time.Duration) (string, error) {
	token, err := utils.GenerateResetToken(s.tokenIssuer, user.UserID, s.now(), ttl, s.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token.SignedString, nil
}

// VerifyToken returns the user a reset token was issued for. It fails
// closed: every problem is reported as ErrTokenIsExpiredOrInvalid.
func (s *resetService) VerifyToken(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseResetToken(token, s.tokenSignKey, s.tokenIssuer, s.now())
	if err != nil {
		log.Debug().Err(err).Msg("reset token rejected")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := s.userRepository.FindUserByID(ctx, parsed.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Int64("user_id", parsed.UserID).Msg("failed to load user of reset token")
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return user, nil
}

// RequestReset mails a reset link for the account registered under email.
// linkBase is the external base URL of the site, e.g. "https://blog.example".
func (s *resetService) RequestReset(ctx context.Context, email, linkBase string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrNoAccountWithEmail
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	token, err := s.IssueToken(user, s.tokenTTL)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to issue reset token")
		return err
	}

	link := strings.TrimSuffix(linkBase, "/") + "/reset_password/" + token

	err = s.mailer.Send(ctx, models.Email{
		To:      []string{user.Email},
		Subject: resetMailSubject,
		Body:    resetMailBody(link),
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to send reset mail")
		return fmt.Errorf("%w: %w", ErrMailFailed, err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("reset mail sent")
	return nil
}

// ResetPassword stores a new password for user.
func (s *resetService) ResetPassword(ctx context.Context, user models.User, raw string) error {
	if raw == "" {
		return ErrEmptyPassword
	}

	hash, err := utils.HashPassword(raw, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.userRepository.UpdatePassword(ctx, user.UserID, hash); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("failed to store new password")
		return fmt.Errorf("failed to store new password: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Msg("password reset")
	return nil
}

func resetMailBody(link string) string {
	return "To reset your password, visit the following link:\n" +
		link + "\n\n" +
		"If you did not make this request then simply ignore this email and no changes will be made.\n"
}
