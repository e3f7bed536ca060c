package application

import "cardapio/internal/domain"

// Re-export kinds for use by the CLI
type Kind = domain.Kind

const KindUnknown = domain.KindUnknown

// Re-export domain types for use by the CLI
type (
	ListItem       = domain.ListItem
	Page           = domain.Page
	PaginationMeta = domain.PaginationMeta
	FilterState    = domain.FilterState
)

// ParseKind determines the list kind from a path segment or name
func ParseKind(s string) Kind {
	return domain.ParseKind(s)
}

// ParseFilterState decodes a query string into filters
func ParseFilterState(rawQuery string) FilterState {
	return domain.ParseFilterState(rawQuery)
}
