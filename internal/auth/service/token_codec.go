package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

const tokenIssuer = "accounts"

// tokenClaims is the wire representation of a token's claims.
type tokenClaims struct {
	Kind string `json:"typ"`
	jwt.RegisteredClaims
}

// tokenCodec implements TokenCodec using HMAC-SHA256 signed JWTs.
// Tokens are signed with keys[0]; verification tries each key in order
// (newest first), which lets a signing key rotate without invalidating
// sessions issued under the previous key.
type tokenCodec struct {
	keys       [][]byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCodec creates a TokenCodec from the ordered signing key list.
func NewTokenCodec(signingKeys []string, accessTTL, refreshTTL time.Duration) (TokenCodec, error) {
	var keys [][]byte
	for _, key := range signingKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, []byte(key))
		}
	}
	if len(keys) == 0 {
		return nil, authDomain.ErrNoSigningKey
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, apperrors.New("token TTLs must be greater than zero")
	}

	return &tokenCodec{
		keys:       keys,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccessToken mints a short-lived access token for the subject.
func (c *tokenCodec) IssueAccessToken(subject string, now time.Time) (string, time.Time, error) {
	return c.issue(subject, now, authDomain.TokenKindAccess, c.accessTTL)
}

// IssueRefreshToken mints a longer-lived refresh token for the subject.
func (c *tokenCodec) IssueRefreshToken(subject string, now time.Time) (string, time.Time, error) {
	return c.issue(subject, now, authDomain.TokenKindRefresh, c.refreshTTL)
}

func (c *tokenCodec) issue(
	subject string,
	now time.Time,
	kind authDomain.TokenKind,
	ttl time.Duration,
) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, authDomain.ErrMissingSubject
	}

	now = now.UTC()
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.keys[0])
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}
	return signed, expiresAt, nil
}

// Decode verifies signature and expiry against the given time and returns the
// token's claims. Only HS256 tokens signed by a configured key are accepted.
func (c *tokenCodec) Decode(token string, now time.Time) (*authDomain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now.UTC() }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
	)

	// Try each key newest-first. Signature failures fall through to the next
	// key; every other failure is terminal for the token itself.
	for _, key := range c.keys {
		parsed, err := parser.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				continue
			case errors.Is(err, jwt.ErrTokenExpired):
				return nil, authDomain.ErrExpiredToken
			case errors.Is(err, jwt.ErrTokenMalformed):
				return nil, authDomain.ErrMalformedToken
			default:
				return nil, authDomain.ErrInvalidToken
			}
		}

		claims, ok := parsed.Claims.(*tokenClaims)
		if !ok || !parsed.Valid {
			return nil, authDomain.ErrInvalidToken
		}
		if strings.TrimSpace(claims.Subject) == "" {
			return nil, authDomain.ErrMissingSubject
		}

		decoded := &authDomain.Claims{
			Subject:   claims.Subject,
			ExpiresAt: claims.ExpiresAt.Time.UTC(),
			Kind:      authDomain.TokenKind(claims.Kind),
		}
		if claims.IssuedAt != nil {
			decoded.IssuedAt = claims.IssuedAt.Time.UTC()
		}
		return decoded, nil
	}

	return nil, authDomain.ErrInvalidSignature
}

// TokenDigest returns the SHA-256 digest of the exact serialized token as a
// hexadecimal string. The revocation list is keyed by this digest so live
// credentials are never stored verbatim.
func TokenDigest(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
