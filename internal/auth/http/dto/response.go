package dto

import (
	"time"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// UserResponse is the public representation of an account. The password hash
// never leaves the server.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserResponse creates a UserResponse from an account's public view.
func NewUserResponse(user *userDomain.PublicView) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
	}
}

// TokenResponse carries issued tokens. RefreshToken is omitted when the
// response results from a refresh, which only mints a new access token.
type TokenResponse struct {
	AccessToken      string     `json:"access_token"`
	RefreshToken     string     `json:"refresh_token,omitempty"`
	TokenType        string     `json:"token_type"`
	AccessExpiresAt  time.Time  `json:"access_expires_at"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at,omitempty"`
}

// NewTokenResponse creates a TokenResponse from a token pair.
func NewTokenResponse(pair *authDomain.TokenPair) TokenResponse {
	response := TokenResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		TokenType:       pair.TokenType,
		AccessExpiresAt: pair.AccessExpiresAt,
	}
	if pair.RefreshToken != "" {
		refreshExpiresAt := pair.RefreshExpiresAt
		response.RefreshExpiresAt = &refreshExpiresAt
	}
	return response
}

// MessageResponse carries a human readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
