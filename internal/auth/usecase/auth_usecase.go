package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/service"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
	userDomain "github.com/allisson/accounts/internal/user/domain"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// passwordStrengthRule mirrors the transport-level rule so programmatic
// callers get the same strength guarantee as HTTP ones.
var passwordStrengthRule = customValidation.PasswordStrength{
	MinLength:     8,
	RequireUpper:  true,
	RequireNumber: true,
}

// authUseCase implements the AuthUseCase interface.
type authUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	revokedRepo    RevokedTokenRepository
	passwords      service.PasswordService
	tokens         service.TokenCodec
	storageTimeout time.Duration

	// now is the clock used for token issuance and validation. Injected so
	// tests can pin time.
	now func() time.Time
}

// NewAuthUseCase creates a new AuthUseCase. storageTimeout bounds every
// repository call; a store that does not answer within it surfaces as
// ErrUnavailable.
func NewAuthUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	revokedRepo RevokedTokenRepository,
	passwords service.PasswordService,
	tokens service.TokenCodec,
	storageTimeout time.Duration,
) AuthUseCase {
	return &authUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		revokedRepo:    revokedRepo,
		passwords:      passwords,
		tokens:         tokens,
		storageTimeout: storageTimeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new user account. The duplicate check and the insert
// run in one transaction so the window for concurrent registrations is
// reduced to what the unique constraints catch.
func (u *authUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.PublicView, error) {
	if input.Password != input.ConfirmPassword {
		return nil, authDomain.ErrPasswordMismatch
	}
	if err := passwordStrengthRule.Validate(input.Password); err != nil {
		return nil, authDomain.ErrWeakPassword
	}

	passwordHash, err := u.passwords.Hash(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	now := u.now()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := u.getByUsernameOrEmail(txCtx, input.Username, input.Email)
		if err != nil && !errors.Is(err, userDomain.ErrUserNotFound) {
			return err
		}
		if existing != nil {
			if existing.Username == input.Username {
				return userDomain.ErrUsernameTaken
			}
			return userDomain.ErrEmailTaken
		}

		// The unique constraints are the backstop for concurrent
		// registrations that slip past the duplicate check.
		return u.createUser(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	view := user.Public()
	return &view, nil
}

// Login verifies the credentials and issues a token pair. The error is
// identical for unknown usernames and wrong passwords.
func (u *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	user, err := u.getByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := u.passwords.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify password")
	}
	if !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	return u.issueTokenPair(user.Username)
}

// Refresh mints a new access token from a refresh token. The blacklist is
// consulted only after the token passes signature and expiry checks, so
// garbage input never costs a storage lookup. Every failure maps to the same
// error so callers cannot tell which check rejected the token.
func (u *authUseCase) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.TokenPair, error) {
	claims, err := u.tokens.Decode(refreshToken, u.now())
	if err != nil {
		return nil, authDomain.ErrInvalidRefreshToken
	}
	if claims.Kind != authDomain.TokenKindRefresh {
		return nil, authDomain.ErrInvalidRefreshToken
	}

	revoked, err := u.isRevoked(ctx, service.TokenDigest(refreshToken))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrInvalidRefreshToken
	}

	accessToken, accessExpiresAt, err := u.tokens.IssueAccessToken(claims.Subject, u.now())
	if err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:     accessToken,
		TokenType:       authDomain.TokenType,
		AccessExpiresAt: accessExpiresAt,
	}, nil
}

// Logout blacklists the presented token until its natural expiry. Revocation
// is idempotent, so repeating a logout with the same token succeeds.
func (u *authUseCase) Logout(ctx context.Context, token string) error {
	claims, err := u.tokens.Decode(token, u.now())
	if err != nil {
		return err
	}

	return u.revoke(ctx, &authDomain.RevokedToken{
		TokenDigest: service.TokenDigest(token),
		ExpiresAt:   claims.ExpiresAt,
		RevokedAt:   u.now(),
	})
}

// CurrentUser resolves the account behind an access token. The blacklist is
// checked only for tokens that pass signature and expiry validation; a logged
// out token is rejected even while its signature and expiry are still valid.
func (u *authUseCase) CurrentUser(ctx context.Context, token string) (*userDomain.PublicView, error) {
	claims, err := u.tokens.Decode(token, u.now())
	if err != nil {
		return nil, err
	}
	if claims.Kind != authDomain.TokenKindAccess {
		return nil, authDomain.ErrInvalidToken
	}

	revoked, err := u.isRevoked(ctx, service.TokenDigest(token))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrTokenRevoked
	}

	user, err := u.getByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	view := user.Public()
	return &view, nil
}

// issueTokenPair mints an access and refresh token for the subject from a
// single clock reading.
func (u *authUseCase) issueTokenPair(subject string) (*authDomain.TokenPair, error) {
	now := u.now()

	accessToken, accessExpiresAt, err := u.tokens.IssueAccessToken(subject, now)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := u.tokens.IssueRefreshToken(subject, now)
	if err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        authDomain.TokenType,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// Repository access goes through these helpers so every call carries the
// storage deadline and maps a missed deadline to ErrUnavailable.

func (u *authUseCase) createUser(ctx context.Context, user *userDomain.User) error {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()
	return u.mapStorageErr(u.userRepo.Create(ctx, user))
}

func (u *authUseCase) getByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()
	user, err := u.userRepo.GetByUsername(ctx, username)
	return user, u.mapStorageErr(err)
}

func (u *authUseCase) getByUsernameOrEmail(
	ctx context.Context,
	username string,
	email string,
) (*userDomain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()
	user, err := u.userRepo.GetByUsernameOrEmail(ctx, username, email)
	return user, u.mapStorageErr(err)
}

func (u *authUseCase) isRevoked(ctx context.Context, tokenDigest string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()
	revoked, err := u.revokedRepo.IsRevoked(ctx, tokenDigest)
	return revoked, u.mapStorageErr(err)
}

func (u *authUseCase) revoke(ctx context.Context, token *authDomain.RevokedToken) error {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()
	return u.mapStorageErr(u.revokedRepo.Revoke(ctx, token))
}

// mapStorageErr translates a missed storage deadline into ErrUnavailable.
// Other errors pass through unchanged.
func (u *authUseCase) mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	return err
}
