// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/errors"
)

// User represents a registered account. PasswordHash holds the one-way hash of
// the credential; the plain password is never persisted.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicView is the subset of User safe to return across the service boundary.
type PublicView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the externally visible projection of the user.
func (u *User) Public() PublicView {
	return PublicView{
		Username: u.Username,
		Email:    u.Email,
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameTaken indicates a user with the same username already exists.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already exists")
)
