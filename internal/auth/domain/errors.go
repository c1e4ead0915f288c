package domain

import (
	"github.com/allisson/accounts/internal/errors"
)

// Authentication errors. Everything that wraps ErrUnauthorized is surfaced to
// callers with an identical response body, so expired, revoked, and forged
// tokens are indistinguishable from the outside.
var (
	// ErrPasswordMismatch indicates password and confirmation do not match.
	ErrPasswordMismatch = errors.Wrap(errors.ErrInvalidInput, "passwords don't match")

	// ErrWeakPassword indicates a password below the minimum strength rules.
	ErrWeakPassword = errors.Wrap(
		errors.ErrInvalidInput,
		"password must be at least 8 characters with an uppercase letter and a digit",
	)

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The message is identical for both cases to prevent user enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "incorrect username or password")

	// ErrInvalidToken indicates a token that failed signature or structural checks.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrExpiredToken indicates a token past its expiry claim.
	ErrExpiredToken = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrInvalidSignature indicates a token signed with an unknown key.
	ErrInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrMalformedToken indicates a token that is not structurally parsable.
	ErrMalformedToken = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrMissingSubject indicates a token without a subject claim.
	ErrMissingSubject = errors.Wrap(errors.ErrUnauthorized, "token subject missing")

	// ErrTokenRevoked indicates a token invalidated by logout.
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "token has been invalidated")

	// ErrInvalidRefreshToken indicates a refresh token that failed any check.
	ErrInvalidRefreshToken = errors.Wrap(errors.ErrUnauthorized, "invalid refresh token")

	// ErrMalformedHash indicates a stored password hash that is structurally
	// invalid. This points at data corruption, not bad user input, so it does
	// not wrap any client-facing sentinel.
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrNoSigningKey indicates the codec was constructed without signing keys.
	ErrNoSigningKey = errors.New("at least one signing key is required")
)
