package events

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

const maxTitleLen = 255

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.Validation("title", "is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return apperrors.Validation("title", "must be at most %d characters", maxTitleLen)
	}
	return nil
}

func validateMax(limit *int) error {
	if limit != nil && *limit < 0 {
		return apperrors.Validation("maxParticipants", "must be zero or greater")
	}
	return nil
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.Validation("endDate", "must not be before startDate")
	}
	return nil
}

func validateCreate(in *CreateEventInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if !in.Type.Valid() {
		return apperrors.Validation("type", "%q is not an event type", in.Type)
	}
	if in.CreatorID.IsZero() {
		return apperrors.Validation("creatorId", "is required")
	}
	if err := validateMax(in.MaxParticipants); err != nil {
		return err
	}
	return validateDates(in.StartDate, in.EndDate)
}

func validateUpdate(in *UpdateEventInput) error {
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		if err := validateTitle(trimmed); err != nil {
			return err
		}
		in.Title = &trimmed
	}
	if in.Type != nil && !in.Type.Valid() {
		return apperrors.Validation("type", "%q is not an event type", *in.Type)
	}
	if in.MaxParticipants != nil && in.ClearMaxParticipants {
		return apperrors.Validation("maxParticipants", "cannot be set and cleared together")
	}
	if in.StartDate != nil && in.ClearStartDate {
		return apperrors.Validation("startDate", "cannot be set and cleared together")
	}
	if in.EndDate != nil && in.ClearEndDate {
		return apperrors.Validation("endDate", "cannot be set and cleared together")
	}
	return validateMax(in.MaxParticipants)
}
