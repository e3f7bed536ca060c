package ports

import "cardapio/internal/domain"

// Catalog is the local store behind the companion server.
// It serves the same contract as the REST backend plus seeding.
type Catalog interface {
	Backend

	// Lifecycle
	Open(dsn string) error
	Close() error

	// Batch updates (for seeding)
	BeginTx() (CatalogTx, error)
}

// CatalogTx represents a transaction for atomic catalog updates
type CatalogTx interface {
	UpsertCategory(c *domain.Category) error
	UpsertDietTag(d *domain.DietTag) error
	UpsertItem(kind domain.Kind, item *domain.ListItem) error

	// Transaction control
	Commit() error
	Rollback() error
}
