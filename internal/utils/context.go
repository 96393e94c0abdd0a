package utils

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key used to store the authenticated principal of
// the current request. Anonymous requests carry no value.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.PrincipalCtxKey, &principal)
var PrincipalCtxKey = contextKey("principal")

// GetPrincipalFromContext retrieves the principal stored by the session
// middleware.
//
// Returns the principal and an ok flag:
//   - ok == true  - a non-nil *models.Principal is present
//   - ok == false - the request is anonymous or the value has an unexpected type
func GetPrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(*models.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal *models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}
