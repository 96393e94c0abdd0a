package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-blog/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates the signed HMAC-SHA256 JWT stored in the
// session cookie.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Audience  (aud): always models.SessionAudience
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus tokenDuration
//   - auth_time      : the moment the user last entered their password
//   - remember       : whether the session is long-lived
//
// Returns an error if issuer, tokenDuration or signKey are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("go-blog", 42, now, now, false, 24*time.Hour, "secret")
func GenerateSessionToken(issuer string, userID int64, issuedAt, authTime time.Time, remember bool, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := &models.SessionClaims{
		RegisteredClaims: registeredClaims(issuer, models.SessionAudience, userID, issuedAt, tokenDuration),
		AuthTime:         authTime.Unix(),
		Remember:         remember,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
		Session:      claims,
	}, nil
}

// GenerateResetToken creates a signed, self-contained password reset token
// for userID that expires ttl after issuedAt.
func GenerateResetToken(issuer string, userID int64, issuedAt time.Time, ttl time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || ttl <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := &models.ResetClaims{
		RegisteredClaims: registeredClaims(issuer, models.PasswordResetAudience, userID, issuedAt, ttl),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ValidateAndParseSessionToken validates a session cookie value as of now
// and extracts its claims.
//
// Validation includes:
//   - Signature verification (HS256 only) using the provided sign key
//   - Issuer (iss) and audience (aud) checks
//   - Expiration (exp) claim check, the claim is required
//   - Strict base64 decoding so that no altered byte goes unnoticed
//   - Subject (sub) claim presence and conversion to int64 UserID
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string, now time.Time) (models.Token, error) {
	claims := &models.SessionClaims{}
	if err := parseClaims(tokenString, claims, tokenSignKey, tokenIssuer, models.SessionAudience, now); err != nil {
		return models.Token{}, err
	}

	userID, err := models.SubjectToUserID(claims.Subject)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
		Session:      claims,
	}, nil
}

// ValidateAndParseResetToken validates a password reset token as of now.
// A session token is rejected because of its audience.
func ValidateAndParseResetToken(tokenString, tokenSignKey, tokenIssuer string, now time.Time) (models.Token, error) {
	claims := &models.ResetClaims{}
	if err := parseClaims(tokenString, claims, tokenSignKey, tokenIssuer, models.PasswordResetAudience, now); err != nil {
		return models.Token{}, err
	}

	userID, err := models.SubjectToUserID(claims.Subject)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

func parseClaims(tokenString string, claims jwt.Claims, signKey, issuer, audience string, now time.Time) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	return nil
}

func registeredClaims(issuer, audience string, userID int64, issuedAt time.Time, d time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(d)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}
}
