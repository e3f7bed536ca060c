package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"cardapio/internal/application"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

const schemaVersion = "1"

// MemoryDSN opens a private in-memory catalog
const MemoryDSN = ":memory:"

// Catalog implements ports.Catalog using SQLite. It is the single-user
// store behind the companion server: favorites are a flag on the item.
type Catalog struct {
	db *sql.DB
}

// Ensure Catalog implements Catalog
var _ ports.Catalog = (*Catalog)(nil)

// NewCatalog creates a new SQLite catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Open initializes the catalog at path (or MemoryDSN)
func (c *Catalog) Open(path string) error {
	// foreign keys are per connection, so they go in the DSN
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
		// WAL mode for better concurrency with the web server
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if path == MemoryDSN {
		// every connection would get its own empty database otherwise
		db.SetMaxOpenConns(1)
	}
	c.db = db

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS diet_tags (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			category_id INTEGER,
			author TEXT NOT NULL DEFAULT '',
			prep_minutes INTEGER NOT NULL DEFAULT 0,
			favorited INTEGER NOT NULL DEFAULT 0,
			published_at INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS item_diets (
			item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			diet_id INTEGER NOT NULL,
			PRIMARY KEY (item_id, diet_id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);
		CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id);
		CREATE INDEX IF NOT EXISTS idx_item_diets_diet ON item_diets(diet_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// kindColumn is the value stored in items.kind
func kindColumn(k domain.Kind) string {
	return strings.ToLower(k.ItemKind().String())
}

// ListItems implements ports.Backend
func (c *Catalog) ListItems(ctx context.Context, q ports.ListQuery) (*domain.Page, error) {
	where, args := buildFilter(q)

	var total int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items i WHERE `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	meta := domain.NewPaginationMeta(total, q.PerPage, q.Page)
	if meta.CurrentPage > meta.LastPage {
		meta.CurrentPage = meta.LastPage
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT i.id, i.title, i.slug, i.summary, i.image_url, COALESCE(i.category_id, 0),
		       i.author, i.prep_minutes, i.favorited, i.published_at,
		       COALESCE((SELECT GROUP_CONCAT(diet_id) FROM item_diets d WHERE d.item_id = i.id), '')
		FROM items i
		WHERE `+where+`
		ORDER BY `+orderBy(q.Filters.Sort())+`
		LIMIT ? OFFSET ?
	`, append(args, meta.PerPage, meta.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []domain.ListItem{}
	for rows.Next() {
		var (
			it        domain.ListItem
			published int64
			diets     string
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.Slug, &it.Summary, &it.ImageURL, &it.CategoryID,
			&it.Author, &it.PrepMinutes, &it.IsFavorited, &published, &diets); err != nil {
			return nil, err
		}
		if published > 0 {
			it.PublishedAt = time.Unix(published, 0).UTC()
		}
		it.DietTagIDs = domain.ParseIDs(diets)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.Page{Data: items, Meta: meta}, nil
}

func buildFilter(q ports.ListQuery) (string, []any) {
	clauses := []string{"i.kind = ?"}
	args := []any{kindColumn(q.Kind)}

	if q.Kind == domain.KindFavorite {
		clauses = append(clauses, "i.favorited = 1")
	}
	if title := strings.TrimSpace(q.Filters.Title()); title != "" {
		clauses = append(clauses, "(i.title LIKE ? OR i.summary LIKE ?)")
		pattern := "%" + title + "%"
		args = append(args, pattern, pattern)
	}
	if id, ok := q.Filters.CategoryID(); ok {
		clauses = append(clauses, "i.category_id = ?")
		args = append(args, id)
	}
	// an item must carry every requested diet tag
	for _, id := range q.Filters.DietIDs() {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM item_diets d WHERE d.item_id = i.id AND d.diet_id = ?)")
		args = append(args, id)
	}
	return strings.Join(clauses, " AND "), args
}

func orderBy(k domain.SortKey) string {
	switch k {
	case domain.SortOldest:
		return "i.published_at ASC, i.id ASC"
	case domain.SortTitle:
		return "i.title COLLATE NOCASE ASC, i.id ASC"
	case domain.SortQuick:
		return "i.prep_minutes ASC, i.id ASC"
	default:
		return "i.published_at DESC, i.id DESC"
	}
}

// ListCategories implements ports.Backend
func (c *Catalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, slug, icon FROM categories ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var (
			cat  domain.Category
			icon string
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &icon); err != nil {
			return nil, err
		}
		cat.Icon = domain.ParseIcon(icon)
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// ListDietTags implements ports.Backend
func (c *Catalog) ListDietTags(ctx context.Context) ([]domain.DietTag, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name FROM diet_tags ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []domain.DietTag{}
	for rows.Next() {
		var d domain.DietTag
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		tags = append(tags, d)
	}
	return tags, rows.Err()
}

// SetFavorite implements ports.Backend
func (c *Catalog) SetFavorite(ctx context.Context, kind domain.Kind, id int64, favorited bool) error {
	res, err := c.db.ExecContext(ctx, `UPDATE items SET favorited = ? WHERE id = ? AND kind = ?`,
		favorited, id, kindColumn(kind))
	if err != nil {
		return err
	}
	return expectOne(res, kind, id)
}

// Delete implements ports.Backend
func (c *Catalog) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND kind = ?`, id, kindColumn(kind))
	if err != nil {
		return err
	}
	return expectOne(res, kind, id)
}

func expectOne(res sql.Result, kind domain.Kind, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", strings.ToLower(kind.ItemKind().String()), id, application.ErrNotFound)
	}
	return nil
}

// BeginTx starts a new transaction
func (c *Catalog) BeginTx() (ports.CatalogTx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return &catalogTx{tx: tx}, nil
}
