package auth

import (
	"github.com/xyz-asif/tradehub/internal/pkg/validator"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

const maxPasswordBytes = 72

// validatePassword enforces strength and bcrypt's input limit.
func validatePassword(password string) error {
	if len(password) > maxPasswordBytes {
		return apperrors.Validation("password", "must be at most %d bytes", maxPasswordBytes)
	}
	if !validator.IsStrongPassword(password) {
		return apperrors.Validation("password", "must be at least 8 characters with upper, lower, digit and symbol")
	}
	return nil
}
