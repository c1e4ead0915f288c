package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.PublicView, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.PublicView), args.Error(1)
}

func (m *MockAuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) CurrentUser(ctx context.Context, token string) (*userDomain.PublicView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.PublicView), args.Error(1)
}

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestAuthUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("LoginSuccessRecorded", func(t *testing.T) {
		next := &MockAuthUseCase{}
		m := &MockBusinessMetrics{}
		decorated := NewAuthUseCaseWithMetrics(next, m)

		input := &authDomain.LoginInput{Username: "alice", Password: "Sup3rsecret"}
		pair := &authDomain.TokenPair{AccessToken: "token", TokenType: authDomain.TokenType}

		next.On("Login", ctx, input).Return(pair, nil)
		m.On("RecordOperation", ctx, "auth", "login", "success").Once()
		m.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "success").Once()

		got, err := decorated.Login(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, pair, got)
		m.AssertExpectations(t)
	})

	t.Run("LoginErrorRecorded", func(t *testing.T) {
		next := &MockAuthUseCase{}
		m := &MockBusinessMetrics{}
		decorated := NewAuthUseCaseWithMetrics(next, m)

		input := &authDomain.LoginInput{Username: "alice", Password: "wrong"}

		next.On("Login", ctx, input).Return(nil, authDomain.ErrInvalidCredentials)
		m.On("RecordOperation", ctx, "auth", "login", "error").Once()
		m.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "error").Once()

		got, err := decorated.Login(ctx, input)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("ErrorPassesThroughUnchanged", func(t *testing.T) {
		next := &MockAuthUseCase{}
		m := &MockBusinessMetrics{}
		decorated := NewAuthUseCaseWithMetrics(next, m)

		wantErr := errors.New("boom")
		next.On("Logout", ctx, "token").Return(wantErr)
		m.On("RecordOperation", ctx, "auth", "logout", "error").Once()
		m.On("RecordDuration", ctx, "auth", "logout", mock.AnythingOfType("time.Duration"), "error").Once()

		err := decorated.Logout(ctx, "token")

		assert.Equal(t, wantErr, err)
	})

	t.Run("AllOperationsRecorded", func(t *testing.T) {
		next := &MockAuthUseCase{}
		m := &MockBusinessMetrics{}
		decorated := NewAuthUseCaseWithMetrics(next, m)

		next.On("Register", ctx, mock.Anything).Return(&userDomain.PublicView{}, nil)
		next.On("Refresh", ctx, "refresh").Return(&authDomain.TokenPair{}, nil)
		next.On("CurrentUser", ctx, "access").Return(&userDomain.PublicView{}, nil)
		for _, operation := range []string{"register", "refresh", "current_user"} {
			m.On("RecordOperation", ctx, "auth", operation, "success").Once()
			m.On("RecordDuration", ctx, "auth", operation, mock.Anything, "success").Once()
		}

		_, _ = decorated.Register(ctx, &authDomain.RegisterInput{})
		_, _ = decorated.Refresh(ctx, "refresh")
		_, _ = decorated.CurrentUser(ctx, "access")

		m.AssertExpectations(t)
	})
}
