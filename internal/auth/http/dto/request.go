// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/accounts/internal/validation"
)

// RegisterRequest contains the parameters for creating a new account.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks if the register request is valid. Password and confirmation
// equality is a business rule and is checked by the use case, not here.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 150),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			// bcrypt only reads the first 72 bytes of its input, so longer
			// passwords are rejected instead of silently truncated.
			validation.Length(8, 72),
			customValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&r.ConfirmPassword,
			validation.Required,
		),
	)
}

// LoginRequest contains the credentials presented at login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshRequest contains the refresh token used to mint a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks if the refresh request is valid.
func (r *RefreshRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken, validation.Required, customValidation.NotBlank),
	)
}
