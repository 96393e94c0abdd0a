package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func testAppConfig() config.App {
	return config.App{
		SecretKey:        "test-secret-key",
		TokenIssuer:      "go-blog-test",
		SessionDuration:  time.Hour,
		RememberDuration: 365 * 24 * time.Hour,
		FreshDuration:    30 * time.Minute,
		ResetTokenTTL:    30 * time.Minute,
		BcryptCost:       bcrypt.MinCost,
		PostsPerPage:     5,
		LogLevel:         "debug",
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// clock is a settable time source for token tests.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
