package ports

import (
	"context"

	"cardapio/internal/domain"
)

// ListQuery is what a list endpoint is asked for
type ListQuery struct {
	Kind    domain.Kind
	Filters domain.FilterState
	Page    int
	PerPage int
}

// Backend defines the REST collaborator the list pages talk to.
// Implementations: the HTTP client in adapters/restapi and the local
// SQLite catalog in adapters/sqlite.
type Backend interface {
	// List operations
	ListItems(ctx context.Context, q ListQuery) (*domain.Page, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListDietTags(ctx context.Context) ([]domain.DietTag, error)

	// Mutations. Success carries no body.
	SetFavorite(ctx context.Context, kind domain.Kind, id int64, favorited bool) error
	Delete(ctx context.Context, kind domain.Kind, id int64) error
}
