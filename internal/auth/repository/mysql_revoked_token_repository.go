package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// MySQLRevokedTokenRepository handles revoked token persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLRevokedTokenRepository struct {
	db *sql.DB
}

// NewMySQLRevokedTokenRepository creates a new MySQLRevokedTokenRepository.
func NewMySQLRevokedTokenRepository(db *sql.DB) *MySQLRevokedTokenRepository {
	return &MySQLRevokedTokenRepository{db: db}
}

// Revoke records a token digest in the blacklist. Revoking a token that is
// already revoked is a no-op.
func (r *MySQLRevokedTokenRepository) Revoke(ctx context.Context, token *domain.RevokedToken) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO revoked_tokens (token_digest, expires_at, revoked_at)
			  VALUES (?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, token.TokenDigest, token.ExpiresAt, token.RevokedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// IsRevoked reports whether the token digest is present in the blacklist.
func (r *MySQLRevokedTokenRepository) IsRevoked(ctx context.Context, tokenDigest string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT 1 FROM revoked_tokens WHERE token_digest = ?`

	var one int
	err := querier.QueryRowContext(ctx, query, tokenDigest).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to check token revocation")
	}
	return true, nil
}

// DeleteExpired removes blacklist entries whose tokens expired before the
// given time.
func (r *MySQLRevokedTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM revoked_tokens WHERE expires_at < ?`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired revoked tokens")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted revoked tokens")
	}
	return rows, nil
}

// CountExpired returns how many blacklist entries expired before the given
// time without deleting them.
func (r *MySQLRevokedTokenRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM revoked_tokens WHERE expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired revoked tokens")
	}
	return count, nil
}
