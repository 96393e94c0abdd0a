// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")
	errListenFailed        = errors.New("failed to bind server address")
	errServerStopped       = errors.New("server stopped unexpectedly")
)
