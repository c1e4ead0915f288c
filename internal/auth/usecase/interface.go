// Package usecase implements the authentication business logic. It
// orchestrates the password service, the token codec, and the persistence
// layer to provide registration, login, token refresh, logout, and current
// user resolution.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*userDomain.User, error)
}

// RevokedTokenRepository defines the interface for the token blacklist.
type RevokedTokenRepository interface {
	// Revoke records a token digest. Revoking an already revoked token is a no-op.
	Revoke(ctx context.Context, token *authDomain.RevokedToken) error
	// IsRevoked reports whether the token digest has been blacklisted.
	IsRevoked(ctx context.Context, tokenDigest string) (bool, error)
	// DeleteExpired purges blacklist entries whose tokens expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	// CountExpired counts purgeable entries without deleting them.
	CountExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuthUseCase defines the interface for authentication business logic.
type AuthUseCase interface {
	// Register creates a new user account and returns its public view.
	// Returns ErrPasswordMismatch when password and confirmation differ, and
	// ErrUsernameTaken or ErrEmailTaken when the account collides with an
	// existing one. The password hash never crosses this boundary.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*userDomain.PublicView, error)

	// Login verifies the credentials and issues an access and refresh token
	// pair. Unknown usernames and wrong passwords both return
	// ErrInvalidCredentials.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.TokenPair, error)

	// Refresh mints a new access token from a valid, non-revoked refresh
	// token. The refresh token itself is not rotated and the returned pair
	// carries no refresh token.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// Logout invalidates the presented token until its natural expiry.
	// Logging out twice with the same token succeeds both times.
	Logout(ctx context.Context, token string) error

	// CurrentUser resolves the account behind a valid, non-revoked access
	// token and returns its public view. Returns ErrUserNotFound when the
	// account no longer exists.
	CurrentUser(ctx context.Context, token string) (*userDomain.PublicView, error)
}
