package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// Supported password hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// passwordService implements PasswordService. New hashes use the configured
// algorithm; verification detects the scheme from the stored hash prefix, so
// accounts hashed under a previous algorithm or cost keep working.
type passwordService struct {
	algorithm string
	cost      int
	argon     *pwdhash.PasswordHasher

	// slots bounds concurrent hashing to the number of CPUs so a burst of
	// registrations cannot starve unrelated request handlers.
	slots *semaphore.Weighted
}

// NewPasswordService creates a PasswordService using the given algorithm and
// bcrypt cost. The cost applies to newly created bcrypt hashes only.
func NewPasswordService(algorithm string, cost int) (PasswordService, error) {
	switch algorithm {
	case AlgorithmBcrypt, AlgorithmArgon2id:
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}

	argon, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create argon2id hasher")
	}

	return &passwordService{
		algorithm: algorithm,
		cost:      cost,
		argon:     argon,
		slots:     semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}, nil
}

// Hash hashes a plain password with the configured algorithm.
func (p *passwordService) Hash(ctx context.Context, password string) (string, error) {
	if !utf8.ValidString(password) {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "password is not valid UTF-8")
	}

	if err := p.slots.Acquire(ctx, 1); err != nil {
		return "", apperrors.Wrap(err, "hashing canceled")
	}
	defer p.slots.Release(1)

	if p.algorithm == AlgorithmArgon2id {
		hash, err := p.argon.Hash([]byte(password))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to hash password")
		}
		return hash, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return string(hash), nil
}

// Verify compares a plain password against a stored hash. The scheme is
// detected from the hash prefix; cost parameters are read from the hash.
func (p *passwordService) Verify(password string, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if err == nil {
			return true, nil
		}
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}
		return false, authDomain.ErrMalformedHash

	case strings.HasPrefix(hash, "$argon2id$"):
		ok, err := p.argon.Verify([]byte(password), hash)
		if err != nil {
			return false, authDomain.ErrMalformedHash
		}
		return ok, nil

	default:
		return false, authDomain.ErrMalformedHash
	}
}
