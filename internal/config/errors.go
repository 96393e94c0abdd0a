// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

var (
	// ErrInvalidAppConfigs is returned when the App section is unusable,
	// e.g. the secret key is missing.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidStorageConfigs is returned when the database or picture
	// storage settings are inconsistent.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidServerConfigs is returned when the server address is missing
	// or the external URL is not an absolute http(s) URL.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
