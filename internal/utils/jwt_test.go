package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer = "test-issuer"
	testKey    = "secret-key"
)

func TestGenerateSessionToken_Success(t *testing.T) {
	now := time.Now()
	authTime := now.Add(-time.Minute)

	token, err := GenerateSessionToken(testIssuer, 123, now, authTime, true, time.Hour, testKey)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.UserID != 123 {
		t.Errorf("expected UserID 123, got %d", token.UserID)
	}
	if token.Session == nil {
		t.Fatal("expected session claims")
	}
	if token.Session.Subject != "123" {
		t.Errorf("expected subject '123', got %s", token.Session.Subject)
	}
	if !token.Session.Remember {
		t.Error("expected remember flag")
	}
	if token.Session.AuthTime != authTime.Unix() {
		t.Errorf("expected auth_time %d, got %d", authTime.Unix(), token.Session.AuthTime)
	}
}

func TestGenerateTokens_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"negative duration", "iss", -time.Hour, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			if _, err := GenerateSessionToken(tt.issuer, 1, now, now, false, tt.duration, tt.key); err == nil {
				t.Error("expected error for invalid session parameters, got nil")
			}
			if _, err := GenerateResetToken(tt.issuer, 1, now, tt.duration, tt.key); err == nil {
				t.Error("expected error for invalid reset parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseSessionToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateSessionToken(testIssuer, 7, now, now, false, time.Hour, testKey)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseSessionToken(token.SignedString, testKey, testIssuer, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.UserID != 7 {
		t.Errorf("expected UserID 7, got %d", parsed.UserID)
	}
	if parsed.Session == nil || parsed.Session.AuthTime != now.Unix() {
		t.Errorf("unexpected session claims: %+v", parsed.Session)
	}
}

func TestValidateAndParseSessionToken_Failures(t *testing.T) {
	now := time.Now()
	token, _ := GenerateSessionToken(testIssuer, 7, now, now, false, time.Hour, testKey)
	reset, _ := GenerateResetToken(testIssuer, 7, now, time.Hour, testKey)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
		at     time.Time
		is     error
	}{
		{"expired", token.SignedString, testKey, testIssuer, now.Add(2 * time.Hour), jwt.ErrTokenExpired},
		{"wrong key", token.SignedString, "other", testIssuer, now, jwt.ErrTokenSignatureInvalid},
		{"wrong issuer", token.SignedString, testKey, "other", now, jwt.ErrTokenInvalidIssuer},
		{"reset token used as session", reset.SignedString, testKey, testIssuer, now, jwt.ErrTokenInvalidAudience},
		{"garbage", "not.a.token", testKey, testIssuer, now, jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseSessionToken(tt.token, tt.key, tt.issuer, tt.at)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestValidateAndParseResetToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateResetToken(testIssuer, 99, now, 30*time.Minute, testKey)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseResetToken(token.SignedString, testKey, testIssuer, now)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.UserID != 99 {
		t.Errorf("expected UserID 99, got %d", parsed.UserID)
	}
	if parsed.Session != nil {
		t.Error("reset token must not carry session claims")
	}

	if _, err := ValidateAndParseResetToken(token.SignedString, testKey, testIssuer, now.Add(31*time.Minute)); err == nil {
		t.Error("expected expired token to fail")
	}
}

// TestValidateAndParseResetToken_TamperedBytes flips every byte of a token
// one at a time and expects each variant to be rejected.
func TestValidateAndParseResetToken_TamperedBytes(t *testing.T) {
	now := time.Now()
	token, _ := GenerateResetToken(testIssuer, 5, now, time.Hour, testKey)
	raw := []byte(token.SignedString)

	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}

		if _, err := ValidateAndParseResetToken(string(tampered), testKey, testIssuer, now); err == nil {
			t.Fatalf("expected tampered token (byte %d) to be rejected", i)
		}
	}
}

func TestValidateAndParseResetToken_SessionTokenRejected(t *testing.T) {
	now := time.Now()
	token, _ := GenerateSessionToken(testIssuer, 5, now, now, false, time.Hour, testKey)

	_, err := ValidateAndParseResetToken(token.SignedString, testKey, testIssuer, now)
	if !errors.Is(err, jwt.ErrTokenInvalidAudience) {
		t.Errorf("expected audience error, got %v", err)
	}
}

func TestValidateAndParse_RejectsNoneAlgorithm(t *testing.T) {
	claims := &models.ResetClaims{
		RegisteredClaims: registeredClaims(testIssuer, models.PasswordResetAudience, 1, time.Now(), time.Hour),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if !strings.HasSuffix(unsigned, ".") {
		t.Fatalf("expected empty signature segment, got %s", unsigned)
	}

	if _, err := ValidateAndParseResetToken(unsigned, testKey, testIssuer, time.Now()); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}
