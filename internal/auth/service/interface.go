// Package service provides technical services for credential verification and
// token issuance.
//
// PasswordService implements slow, salted password hashing with constant-time
// verification. TokenCodec implements signed, time-bound bearer tokens.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// PasswordService defines operations for password hashing and verification.
// Implementations must use a deliberately slow, salted algorithm so that a
// leaked hash cannot be brute forced offline at interactive rates.
type PasswordService interface {
	// Hash transforms a plain password into a one-way hash. The scheme and
	// cost parameters are embedded in the hash itself, so they can be tuned
	// without breaking verification of previously stored values.
	//
	// Hashing is CPU-bound; implementations bound concurrency internally and
	// honor ctx cancellation while waiting for a slot.
	Hash(ctx context.Context, password string) (string, error)

	// Verify compares a plain password against a stored hash in constant time.
	// A mismatch returns (false, nil); an error is returned only when the
	// stored hash is structurally invalid.
	Verify(password string, hash string) (bool, error)
}

// TokenCodec encodes and decodes signed, time-bound tokens.
// The codec is the only component that touches the signing keys.
type TokenCodec interface {
	// IssueAccessToken mints a short-lived access token for the subject.
	// The returned time is the token's expiry.
	IssueAccessToken(subject string, now time.Time) (string, time.Time, error)

	// IssueRefreshToken mints a longer-lived refresh token for the subject.
	IssueRefreshToken(subject string, now time.Time) (string, time.Time, error)

	// Decode verifies signature and expiry and returns the token's claims.
	// Only tokens produced by Issue* with a configured signing key are
	// accepted; there is no fallback algorithm.
	//
	// Errors: ErrInvalidSignature, ErrExpiredToken, ErrMalformedToken,
	// ErrMissingSubject. All wrap the unauthorized sentinel.
	Decode(token string, now time.Time) (*authDomain.Claims, error)
}
