// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

// sessionService signs the session cookie value and rebuilds the principal
// from it on every request. Nothing is stored server-side.
type sessionService struct {
	userRepository store.UserRepository

	tokenSignKey string
	tokenIssuer  string

	sessionDuration  time.Duration
	rememberDuration time.Duration
	freshDuration    time.Duration

	now func() time.Time

	logger *logger.Logger
}

func NewSessionService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		userRepository:   userRepository,
		tokenSignKey:     cfg.SecretKey,
		tokenIssuer:      cfg.TokenIssuer,
		sessionDuration:  cfg.SessionDuration,
		rememberDuration: cfg.RememberDuration,
		freshDuration:    cfg.FreshDuration,
		now:              time.Now,
		logger:           logger,
	}
}

// CreateSession issues a fresh session token for user after a successful
// password check. A remembered session lives for the remember duration.
func (s *sessionService) CreateSession(ctx context.Context, user models.User, remember bool) (models.Token, error) {
	now := s.now()
	return s.issue(ctx, user.UserID, now, now, remember)
}

// LoadPrincipal verifies token and loads the current state of its user.
//
// Every verification failure, including a user that no longer exists, is
// reported as ErrTokenIsExpiredOrInvalid. Storage failures are returned
// wrapped so the caller can tell them apart from a bad cookie.
func (s *sessionService) LoadPrincipal(ctx context.Context, token string) (models.Principal, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	parsed, err := utils.ValidateAndParseSessionToken(token, s.tokenSignKey, s.tokenIssuer, now)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return models.Principal{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := s.userRepository.FindUserByID(ctx, parsed.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Int64("user_id", parsed.UserID).Msg("session refers to a missing user")
		return models.Principal{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Int64("user_id", parsed.UserID).Msg("failed to load session user")
		return models.Principal{}, fmt.Errorf("failed to load session user: %w", err)
	}
	user.PasswordHash = ""

	authenticatedAt := parsed.Session.AuthenticatedAt()

	return models.Principal{
		User:            user,
		AuthenticatedAt: authenticatedAt,
		Remember:        parsed.Session.Remember,
		Fresh:           now.Sub(authenticatedAt) < s.freshDuration,
	}, nil
}

// Refresh re-issues the session of principal as freshly authenticated.
// Used after the user re-entered their password.
func (s *sessionService) Refresh(ctx context.Context, principal models.Principal) (models.Token, error) {
	if !principal.IsAuthenticated() {
		return models.Token{}, ErrNotLoggedIn
	}

	now := s.now()
	return s.issue(ctx, principal.User.UserID, now, now, principal.Remember)
}

func (s *sessionService) issue(ctx context.Context, userID int64, issuedAt, authTime time.Time, remember bool) (models.Token, error) {
	duration := s.sessionDuration
	if remember {
		duration = s.rememberDuration
	}

	token, err := utils.GenerateSessionToken(s.tokenIssuer, userID, issuedAt, authTime, remember, duration, s.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("failed to sign session token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}
