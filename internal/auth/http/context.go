// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"

	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// userKey is a context key type for storing authenticated users.
type userKey struct{}

// WithUser stores the authenticated user's public view in the context.
// Called by the authentication middleware after successful token validation.
func WithUser(ctx context.Context, user *userDomain.PublicView) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user's public view from the context.
// Returns (nil, false) if no user was set.
func GetUser(ctx context.Context) (*userDomain.PublicView, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.PublicView)
	return user, ok
}
