// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.SessionDuration <= 0 || cfg.App.RememberDuration <= 0 ||
		cfg.App.FreshDuration <= 0 || cfg.App.ResetTokenTTL <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.PostsPerPage <= 0 {
		return fmt.Errorf("%w: posts per page must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost out of range", ErrInvalidAppConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Storage.DB.Driver != DriverSQLite && cfg.Storage.DB.Driver != DriverPostgres {
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	p := cfg.Storage.Pictures
	if p.S3Enabled() && (p.S3Region == "" || p.S3PublicURL == "") {
		return fmt.Errorf("%w: S3 picture storage needs region and public URL", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if u := cfg.Server.ExternalURL; u != "" {
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: external URL must be an absolute http(s) URL", ErrInvalidServerConfigs)
		}
	}

	return nil
}
