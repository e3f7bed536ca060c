package application

import (
	"fmt"

	"cardapio/internal/domain"
)

// MaxPerPage caps the page size a caller may request
const MaxPerPage = 100

// formatFieldName converts field names to space-separated words
// for more readable error messages (e.g., "categoryID" -> "category ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":         "ID",
		"itemID":     "item ID",
		"categoryID": "category ID",
		"kind":       "list kind",
		"perPage":    "page size",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateID checks that an item ID is positive
func ValidateID(fieldName string, id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %d", formatFieldName(fieldName), id),
		}
	}
	return nil
}

// ValidateKind checks the kind is one of the list kinds. When mutable is
// set, only kinds that own items (recipes, posts) are accepted.
func ValidateKind(kind domain.Kind, mutable bool) error {
	switch kind {
	case domain.KindRecipe, domain.KindPost:
		return nil
	case domain.KindFavorite:
		if !mutable {
			return nil
		}
	}
	return &ValidationError{
		Field:   "kind",
		Message: fmt.Sprintf("unsupported %s: %s", formatFieldName("kind"), kind),
	}
}

// ValidatePerPage checks a requested page size; zero means "use the default"
func ValidatePerPage(perPage int) error {
	if perPage < 0 || perPage > MaxPerPage {
		return &ValidationError{
			Field:   "perPage",
			Message: fmt.Sprintf("%s must be between 1 and %d, got %d", formatFieldName("perPage"), MaxPerPage, perPage),
		}
	}
	return nil
}
