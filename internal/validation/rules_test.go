package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/accounts/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{MinLength: 8, RequireUpper: true, RequireNumber: true}

	t.Run("ValidPassword", func(t *testing.T) {
		assert.NoError(t, rule.Validate("Passw0rd"))
	})

	t.Run("TooShort", func(t *testing.T) {
		err := rule.Validate("Pw0")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("MissingUppercase", func(t *testing.T) {
		err := rule.Validate("passw0rd")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "uppercase")
	})

	t.Run("MissingDigit", func(t *testing.T) {
		err := rule.Validate("Password")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "digit")
	})

	t.Run("NotAString", func(t *testing.T) {
		assert.Error(t, rule.Validate(12345))
	})
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email.Validate("alice@example.com"))
	assert.Error(t, Email.Validate("not-an-email"))
	assert.Error(t, Email.Validate("missing@tld"))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
