package editor

import (
	"context"
	"strings"

	"menuboard/internal/models"
)

// DefaultCategories are created for a profile that has none.
var DefaultCategories = []string{"Appetizers", "Main Course", "Desserts", "Beverages", "Sides"}

// ErrEmptyCategory is returned when the new category name is blank.
var ErrEmptyCategory = models.NewValidationError("Category name is required")

// NormalizeCategory trims and lowercases a category name.
func NormalizeCategory(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// AddCategory appends raw to existing and stores the full list. It returns the
// stored list and the normalized name. Existing names are not sent again.
func AddCategory(ctx context.Context, api API, existing []string, raw string) ([]string, string, error) {
	name := NormalizeCategory(raw)
	if name == "" {
		return existing, "", ErrEmptyCategory
	}
	for _, c := range existing {
		if c == name {
			return existing, name, nil
		}
	}

	next := make([]string, 0, len(existing)+1)
	next = append(next, existing...)
	next = append(next, name)

	stored, err := api.ReplaceCategories(ctx, next)
	if err != nil {
		return existing, "", err
	}
	return stored, name, nil
}

// EnsureDefaultCategories stores DefaultCategories when categories is empty.
func EnsureDefaultCategories(ctx context.Context, api API, categories []string) ([]string, error) {
	if len(categories) > 0 {
		return categories, nil
	}
	return api.ReplaceCategories(ctx, DefaultCategories)
}
