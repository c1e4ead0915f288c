package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/user/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func userRows(user *domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
}

func testUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := testUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.PasswordHash).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLUserRepository(db)
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := testUser()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		repo := NewPostgreSQLUserRepository(db)
		err := repo.Create(context.Background(), user)

		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := testUser()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		repo := NewPostgreSQLUserRepository(db)
		err := repo.Create(context.Background(), user)

		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := testUser()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("connection refused"))

		repo := NewPostgreSQLUserRepository(db)
		err := repo.Create(context.Background(), user)

		assert.Error(t, err)
		assert.False(t, apperrors.Is(err, apperrors.ErrConflict))
	})
}

func TestPostgreSQLUserRepository_GetByUsername(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := testUser()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs(user.Username).
			WillReturnRows(userRows(user))

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByUsername(context.Background(), user.Username)

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByUsername(context.Background(), "ghost")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_GetByUsernameOrEmail(t *testing.T) {
	t.Run("MatchOnEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := testUser()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = (.+) OR email").
			WithArgs("other", user.Email).
			WillReturnRows(userRows(user))

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByUsernameOrEmail(context.Background(), "other", user.Email)

		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = (.+) OR email").
			WillReturnError(sql.ErrNoRows)

		repo := NewPostgreSQLUserRepository(db)
		got, err := repo.GetByUsernameOrEmail(context.Background(), "ghost", "ghost@example.com")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
