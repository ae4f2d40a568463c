package forum

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

const maxTitleLen = 255

// validateImage rejects an image unless every descriptive field is present.
func validateImage(i int, img Image) error {
	field := fmt.Sprintf("images[%d]", i)
	missing := []string{}
	if strings.TrimSpace(img.Filename) == "" {
		missing = append(missing, "filename")
	}
	if strings.TrimSpace(img.OriginalName) == "" {
		missing = append(missing, "originalName")
	}
	if strings.TrimSpace(img.Path) == "" {
		missing = append(missing, "path")
	}
	if img.Size <= 0 {
		missing = append(missing, "size")
	}
	if strings.TrimSpace(img.Mimetype) == "" {
		missing = append(missing, "mimetype")
	}
	if len(missing) > 0 {
		return apperrors.Validation(field, "missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func validatePost(in *CreatePostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if in.AuthorID.IsZero() {
		return apperrors.Validation("authorId", "is required")
	}
	if !in.Category.Valid() {
		return apperrors.Validation("category", "%q is not a forum category", in.Category)
	}
	if in.Title == "" {
		return apperrors.Validation("title", "is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return apperrors.Validation("title", "must be at most %d characters", maxTitleLen)
	}
	if in.Content == "" {
		return apperrors.Validation("content", "is required")
	}
	for i, img := range in.Images {
		if err := validateImage(i, img); err != nil {
			return err
		}
	}
	return nil
}
