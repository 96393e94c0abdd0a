// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Principal is the authenticated identity of the current request.
// It is rebuilt from the signed session cookie on every request and never
// stored; a nil *Principal means the request is anonymous.
type Principal struct {
	// User is the freshly loaded account the session belongs to.
	User User

	// AuthenticatedAt is the moment the user last proved their password.
	AuthenticatedAt time.Time

	// Remember reports whether the session cookie is long-lived.
	Remember bool

	// Fresh reports whether AuthenticatedAt is recent enough for routes
	// that require re-authentication.
	Fresh bool
}

// ID returns the principal's user identifier, or 0 for a nil principal.
func (p *Principal) ID() int64 {
	if p == nil {
		return 0
	}
	return p.User.UserID
}

// IsAuthenticated reports whether p represents a logged-in user.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.User.UserID != 0
}
