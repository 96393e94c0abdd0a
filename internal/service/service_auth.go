package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential checks and profile changes using a
// UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// bcryptCost is the work factor of newly created password hashes.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// RegisterUser hashes the submitted password and creates the account.
//
// Returns the persisted user (with a server-assigned UserID) or a wrapped
// storage error. A taken username or email surfaces as
// store.ErrUsernameAlreadyExists / store.ErrEmailAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, form models.RegistrationForm) (models.User, error) {
	log := logger.FromContext(ctx)

	if form.Password == "" {
		return models.User{}, ErrEmptyPassword
	}

	hash, err := utils.HashPassword(form.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("username", form.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login looks the account up by email and checks the password.
//
// An unknown email and a wrong password both yield ErrWrongCredentials so
// callers cannot tell which one it was.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Msg("login attempt for unknown email")
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return user, nil
}

// Reauthenticate checks password against the account of userID.
func (a *authService) Reauthenticate(ctx context.Context, userID int64, password string) (models.User, error) {
	user, err := a.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("wrong password on reauthentication")
		return models.User{}, ErrWrongCredentials
	}

	return user, nil
}

func (a *authService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	return user, a.lookupError(ctx, err)
}

func (a *authService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := a.userRepository.FindUserByUsername(ctx, username)
	return user, a.lookupError(ctx, err)
}

// UpdateProfile applies the non-nil fields of update to the account.
// Uniqueness violations come back as the store sentinels.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if update.IsEmpty() {
		return user, nil
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.ImageFile != nil {
		user.ImageFile = *update.ImageFile
	}

	updated, err := a.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("profile updated")
	return updated, nil
}

func (a *authService) lookupError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}

	logger.FromContext(ctx).Err(err).Msg("user lookup failed")
	return fmt.Errorf("user lookup failed: %w", err)
}
