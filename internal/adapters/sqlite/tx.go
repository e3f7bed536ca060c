package sqlite

import (
	"database/sql"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// catalogTx implements ports.CatalogTx
type catalogTx struct {
	tx *sql.Tx
}

// Ensure catalogTx implements CatalogTx
var _ ports.CatalogTx = (*catalogTx)(nil)

// UpsertCategory inserts or updates a category
func (t *catalogTx) UpsertCategory(c *domain.Category) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO categories (id, name, slug, icon)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.Name, c.Slug, c.Icon.String())
	return err
}

// UpsertDietTag inserts or updates a diet tag
func (t *catalogTx) UpsertDietTag(d *domain.DietTag) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO diet_tags (id, name) VALUES (?, ?)`, d.ID, d.Name)
	return err
}

// UpsertItem inserts or updates an item and replaces its diet tags
func (t *catalogTx) UpsertItem(kind domain.Kind, item *domain.ListItem) error {
	var category any
	if item.CategoryID > 0 {
		category = item.CategoryID
	}
	var published int64
	if !item.PublishedAt.IsZero() {
		published = item.PublishedAt.Unix()
	}

	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO items
			(id, kind, title, slug, summary, image_url, category_id, author, prep_minutes, favorited, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, kindColumn(kind), item.Title, item.Slug, item.Summary, item.ImageURL,
		category, item.Author, item.PrepMinutes, item.IsFavorited, published)
	if err != nil {
		return err
	}

	if _, err := t.tx.Exec(`DELETE FROM item_diets WHERE item_id = ?`, item.ID); err != nil {
		return err
	}
	for _, id := range item.DietTagIDs {
		if _, err := t.tx.Exec(`INSERT OR IGNORE INTO item_diets (item_id, diet_id) VALUES (?, ?)`, item.ID, id); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *catalogTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *catalogTx) Rollback() error {
	return t.tx.Rollback()
}
