package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audiences keep session cookies and password reset tokens apart even though
// both are signed with the same secret key.
const (
	SessionAudience       = "session"
	PasswordResetAudience = "password-reset"
)

// SessionClaims is the payload of the signed session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims

	// AuthTime is the unix time of the last password check. It drives
	// session freshness.
	AuthTime int64 `json:"auth_time"`

	// Remember marks a long-lived "remember me" session.
	Remember bool `json:"remember,omitempty"`
}

// AuthenticatedAt returns AuthTime as a time.Time.
func (c *SessionClaims) AuthenticatedAt() time.Time {
	return time.Unix(c.AuthTime, 0)
}

// ResetClaims is the payload of a password reset token.
type ResetClaims struct {
	jwt.RegisteredClaims
}

// Token wraps a signed token with convenience accessors.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be placed into a cookie or a URL.
//
// UserID is a cached, parsed copy of the "sub" claim converted to int64.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`

	// ExpiresAt is the expiry of the token.
	ExpiresAt time.Time `json:"-"`

	// Session holds the decoded session claims for session tokens.
	Session *SessionClaims `json:"-"`
}

// SubjectToUserID parses a "sub" claim into a user identifier.
func SubjectToUserID(subject string) (int64, error) {
	if subject == "" {
		return 0, fmt.Errorf("empty subject")
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting subject to user ID: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
