package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLRevokedTokenRepository_Revoke(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		token := testRevokedToken()

		mock.ExpectExec("INSERT IGNORE INTO revoked_tokens").
			WithArgs(token.TokenDigest, token.ExpiresAt, token.RevokedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMySQLRevokedTokenRepository(db)
		err := repo.Revoke(context.Background(), token)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyRevokedIsNoOp", func(t *testing.T) {
		db, mock := newMockDB(t)
		token := testRevokedToken()

		mock.ExpectExec("INSERT IGNORE INTO revoked_tokens").
			WithArgs(token.TokenDigest, token.ExpiresAt, token.RevokedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewMySQLRevokedTokenRepository(db)
		err := repo.Revoke(context.Background(), token)

		assert.NoError(t, err)
	})
}

func TestMySQLRevokedTokenRepository_IsRevoked(t *testing.T) {
	t.Run("Revoked", func(t *testing.T) {
		db, mock := newMockDB(t)
		token := testRevokedToken()

		mock.ExpectQuery("SELECT 1 FROM revoked_tokens").
			WithArgs(token.TokenDigest).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		repo := NewMySQLRevokedTokenRepository(db)
		revoked, err := repo.IsRevoked(context.Background(), token.TokenDigest)

		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("NotRevoked", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery("SELECT 1 FROM revoked_tokens").
			WithArgs("unknown-digest").
			WillReturnError(sql.ErrNoRows)

		repo := NewMySQLRevokedTokenRepository(db)
		revoked, err := repo.IsRevoked(context.Background(), "unknown-digest")

		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestMySQLRevokedTokenRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	before := time.Now().UTC()

	mock.ExpectExec("DELETE FROM revoked_tokens WHERE expires_at").
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewMySQLRevokedTokenRepository(db)
	deleted, err := repo.DeleteExpired(context.Background(), before)

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestMySQLRevokedTokenRepository_CountExpired(t *testing.T) {
	db, mock := newMockDB(t)
	before := time.Now().UTC()

	mock.ExpectQuery("SELECT COUNT(.+) FROM revoked_tokens WHERE expires_at").
		WithArgs(before).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewMySQLRevokedTokenRepository(db)
	count, err := repo.CountExpired(context.Background(), before)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
