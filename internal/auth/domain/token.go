// Package domain defines the authentication domain entities and types.
package domain

import (
	"time"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	// TokenKindAccess is a short-lived credential authorizing individual requests.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is a longer-lived credential used solely to mint new access tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// TokenType is the scheme reported alongside issued tokens.
const TokenType = "bearer"

// Claims is the verified content of a signed token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Kind      TokenKind
}

// TokenPair holds the credentials returned by a successful login.
// RefreshToken is empty when the pair results from a refresh, which only
// mints a new access token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RevokedToken records a token invalidated before its natural expiry.
// TokenDigest is the SHA-256 digest of the exact serialized token; once
// ExpiresAt has passed the record is dead and may be purged.
type RevokedToken struct {
	TokenDigest string
	ExpiresAt   time.Time
	RevokedAt   time.Time
}

// RegisterInput contains the parameters for account registration.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}
