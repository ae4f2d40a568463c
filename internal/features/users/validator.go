package users

import (
	"strings"
	"unicode/utf8"

	"github.com/xyz-asif/tradehub/internal/pkg/validator"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

const (
	maxUsernameLen = 50
	maxEmailLen    = 100
	maxBioLen      = 500
	maxBanReason   = 500
)

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUsername checks presence and length of a username
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.Validation("username", "is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return apperrors.Validation("username", "must be at most %d characters", maxUsernameLen)
	}
	if strings.ContainsAny(username, " \t\n") {
		return apperrors.Validation("username", "must not contain whitespace")
	}
	return nil
}

// ValidateEmail checks format and length of an already-normalized email
func ValidateEmail(email string) error {
	if email == "" {
		return apperrors.Validation("email", "is required")
	}
	if len(email) > maxEmailLen {
		return apperrors.Validation("email", "must be at most %d characters", maxEmailLen)
	}
	if !validator.IsValidEmail(email) {
		return apperrors.Validation("email", "is not a valid address")
	}
	return nil
}

func validateCreate(in *CreateUserInput) error {
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if in.PasswordHash == "" {
		return apperrors.Validation("password", "is required")
	}
	if !in.Role.Valid() {
		return apperrors.Validation("role", "%q is not a known role", in.Role)
	}
	if in.Role == RoleBanned {
		return apperrors.Validation("role", "new accounts cannot be banned")
	}
	return nil
}

func validateUpdate(in *UpdateUserInput) error {
	if in.Username != nil {
		if err := ValidateUsername(*in.Username); err != nil {
			return err
		}
	}
	if in.Email != nil {
		if err := ValidateEmail(*in.Email); err != nil {
			return err
		}
	}
	if in.Bio != nil && utf8.RuneCountInString(*in.Bio) > maxBioLen {
		return apperrors.Validation("bio", "must be at most %d characters", maxBioLen)
	}
	if in.AvatarURL != nil && *in.AvatarURL != "" && !validator.IsValidURL(*in.AvatarURL) {
		return apperrors.Validation("avatarUrl", "is not a valid URL")
	}
	if in.Role != nil && !in.Role.Valid() {
		return apperrors.Validation("role", "%q is not a known role", *in.Role)
	}

	banning := in.Role != nil && *in.Role == RoleBanned
	if banning && (in.BanReason == nil || strings.TrimSpace(*in.BanReason) == "") {
		return apperrors.Validation("banReason", "is required when banning a user")
	}
	if !banning && in.BanReason != nil {
		return apperrors.Validation("banReason", "can only be set when banning a user")
	}
	if in.BanReason != nil && utf8.RuneCountInString(*in.BanReason) > maxBanReason {
		return apperrors.Validation("banReason", "must be at most %d characters", maxBanReason)
	}
	return nil
}
