package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authHTTP "github.com/allisson/accounts/internal/auth/http"
	"github.com/allisson/accounts/internal/config"
	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// stubAuthUseCase implements usecase.AuthUseCase with function fields so each
// test overrides only what it needs.
type stubAuthUseCase struct {
	registerFn    func(ctx context.Context, input *authDomain.RegisterInput) (*userDomain.PublicView, error)
	loginFn       func(ctx context.Context, input *authDomain.LoginInput) (*authDomain.TokenPair, error)
	refreshFn     func(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)
	logoutFn      func(ctx context.Context, token string) error
	currentUserFn func(ctx context.Context, token string) (*userDomain.PublicView, error)
}

func (s *stubAuthUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.PublicView, error) {
	if s.registerFn == nil {
		return &userDomain.PublicView{Username: input.Username, Email: input.Email}, nil
	}
	return s.registerFn(ctx, input)
}

func (s *stubAuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	if s.loginFn == nil {
		return &authDomain.TokenPair{AccessToken: "access", TokenType: authDomain.TokenType}, nil
	}
	return s.loginFn(ctx, input)
}

func (s *stubAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	if s.refreshFn == nil {
		return &authDomain.TokenPair{AccessToken: "access", TokenType: authDomain.TokenType}, nil
	}
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthUseCase) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

func (s *stubAuthUseCase) CurrentUser(ctx context.Context, token string) (*userDomain.PublicView, error) {
	if s.currentUserFn == nil {
		return nil, authDomain.ErrInvalidToken
	}
	return s.currentUserFn(ctx, token)
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:                   "127.0.0.1",
		ServerPort:                   8080,
		LogLevel:                     "info",
		RateLimitLoginEnabled:        false,
		RateLimitLoginRequestsPerSec: 5,
		RateLimitLoginBurst:          10,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, useCase *stubAuthUseCase) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var loginLimiter *authHTTP.LoginRateLimiter
	if cfg.RateLimitLoginEnabled {
		loginLimiter = authHTTP.NewLoginRateLimiter(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			logger,
		)
		t.Cleanup(loginLimiter.Close)
	}
	return NewRouter(cfg, logger, useCase, nil, loginLimiter)
}

func TestNewRouter(t *testing.T) {
	t.Run("HealthEndpoints", func(t *testing.T) {
		router := newTestRouter(t, testConfig(), &stubAuthUseCase{})

		for _, path := range []string{"/health", "/ready"} {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, recorder.Code, path)
		}
	})

	t.Run("RegisterRoute", func(t *testing.T) {
		router := newTestRouter(t, testConfig(), &stubAuthUseCase{})

		body := `{"username":"alice","email":"alice@example.com","password":"Sup3rsecret","confirm_password":"Sup3rsecret"}`
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("MeRequiresAuthentication", func(t *testing.T) {
		router := newTestRouter(t, testConfig(), &stubAuthUseCase{})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("MeWithValidToken", func(t *testing.T) {
		useCase := &stubAuthUseCase{
			currentUserFn: func(ctx context.Context, token string) (*userDomain.PublicView, error) {
				require.Equal(t, "valid-token", token)
				return &userDomain.PublicView{Username: "alice", Email: "alice@example.com"}, nil
			},
		}
		router := newTestRouter(t, testConfig(), useCase)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		request.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "alice")
	})

	t.Run("LoginRateLimitApplied", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimitLoginEnabled = true
		cfg.RateLimitLoginRequestsPerSec = 0.001
		cfg.RateLimitLoginBurst = 1
		router := newTestRouter(t, cfg, &stubAuthUseCase{})

		body := `{"username":"alice","password":"Sup3rsecret"}`

		first := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(first, request)

		second := httptest.NewRecorder()
		request = httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(second, request)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("RefreshAndLogoutNotRateLimited", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimitLoginEnabled = true
		cfg.RateLimitLoginRequestsPerSec = 0.001
		cfg.RateLimitLoginBurst = 1
		router := newTestRouter(t, cfg, &stubAuthUseCase{})

		for i := 0; i < 3; i++ {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh",
				strings.NewReader(`{"refresh_token":"token"}`))
			request.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusOK, recorder.Code)
		}
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	logLine := buf.String()
	assert.Contains(t, logLine, `"method":"GET"`)
	assert.Contains(t, logLine, `"path":"/ping"`)
	assert.Contains(t, logLine, `"status":200`)
}

func TestServerLifecycle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer("127.0.0.1", 0, logger, newTestRouter(t, testConfig(), &stubAuthUseCase{}))

	require.NotNil(t, server.GetHandler())
	assert.NoError(t, server.Shutdown(context.Background()))
}
