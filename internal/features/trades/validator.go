package trades

import (
	"strings"

	"github.com/xyz-asif/tradehub/internal/pkg/validator"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

func validateCreate(in *CreateTradeInput) error {
	in.ItemOffered = strings.TrimSpace(in.ItemOffered)
	in.ItemRequested = strings.TrimSpace(in.ItemRequested)
	in.Description = strings.TrimSpace(in.Description)

	if in.OwnerID.IsZero() {
		return apperrors.Validation("ownerId", "is required")
	}
	if in.ItemOffered == "" {
		return apperrors.Validation("itemOffered", "is required")
	}
	return nil
}

func validateDetails(d *Details) error {
	if d.ItemOffered == nil && d.ItemRequested == nil && d.Description == nil {
		return apperrors.Validation("body", "nothing to update")
	}
	if d.ItemOffered != nil {
		trimmed := strings.TrimSpace(*d.ItemOffered)
		if trimmed == "" {
			return apperrors.Validation("itemOffered", "cannot be empty")
		}
		d.ItemOffered = &trimmed
	}
	return nil
}

func validateImageURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return apperrors.Validation("url", "is required")
	}
	if !validator.IsValidURL(url) {
		return apperrors.Validation("url", "is not a valid URL")
	}
	return nil
}
