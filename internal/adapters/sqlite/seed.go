package sqlite

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// Fixtures is the YAML document used to seed a catalog
type Fixtures struct {
	Categories []categoryFixture `yaml:"categories"`
	DietTags   []dietFixture     `yaml:"diet_tags"`
	Recipes    []itemFixture     `yaml:"recipes"`
	Posts      []itemFixture     `yaml:"posts"`
}

type categoryFixture struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
	Icon string `yaml:"icon"`
}

type dietFixture struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type itemFixture struct {
	ID          int64     `yaml:"id"`
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Summary     string    `yaml:"summary"`
	ImageURL    string    `yaml:"image_url"`
	CategoryID  int64     `yaml:"category_id"`
	DietIDs     []int64   `yaml:"diet_ids"`
	Author      string    `yaml:"author"`
	PrepMinutes int       `yaml:"prep_minutes"`
	Favorited   bool      `yaml:"is_favorited"`
	PublishedAt time.Time `yaml:"published_at"`
}

func (f itemFixture) item() domain.ListItem {
	return domain.ListItem{
		ID:          f.ID,
		Title:       f.Title,
		Slug:        f.Slug,
		Summary:     f.Summary,
		ImageURL:    f.ImageURL,
		CategoryID:  f.CategoryID,
		DietTagIDs:  f.DietIDs,
		Author:      f.Author,
		PrepMinutes: f.PrepMinutes,
		IsFavorited: f.Favorited,
		PublishedAt: f.PublishedAt,
	}
}

// LoadFixtures decodes a fixtures document. Unknown keys are rejected so a
// typo does not silently drop data.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for _, it := range append(f.Recipes, f.Posts...) {
		if it.ID <= 0 || it.Title == "" {
			return nil, fmt.Errorf("invalid fixture item %d %q: id and title are required", it.ID, it.Title)
		}
	}
	return &f, nil
}

// DefaultFixtures returns the bundled demo catalog
func DefaultFixtures() *Fixtures {
	f, err := LoadFixtures(bytes.NewReader(defaultFixtures))
	if err != nil {
		panic(fmt.Sprintf("bundled fixtures are invalid: %v", err))
	}
	return f
}

// SeedStats reports what a Seed call wrote
type SeedStats struct {
	Categories int
	DietTags   int
	Recipes    int
	Posts      int
}

// Seed writes fixtures into the catalog in a single transaction
func Seed(catalog ports.Catalog, f *Fixtures) (SeedStats, error) {
	var stats SeedStats

	tx, err := catalog.BeginTx()
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range f.Categories {
		cat := domain.Category{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: domain.ParseIcon(c.Icon)}
		if err := tx.UpsertCategory(&cat); err != nil {
			return stats, fmt.Errorf("failed to upsert category %d: %w", c.ID, err)
		}
		stats.Categories++
	}
	for _, d := range f.DietTags {
		tag := domain.DietTag{ID: d.ID, Name: d.Name}
		if err := tx.UpsertDietTag(&tag); err != nil {
			return stats, fmt.Errorf("failed to upsert diet tag %d: %w", d.ID, err)
		}
		stats.DietTags++
	}
	for _, r := range f.Recipes {
		it := r.item()
		if err := tx.UpsertItem(domain.KindRecipe, &it); err != nil {
			return stats, fmt.Errorf("failed to upsert recipe %d: %w", r.ID, err)
		}
		stats.Recipes++
	}
	for _, p := range f.Posts {
		it := p.item()
		if err := tx.UpsertItem(domain.KindPost, &it); err != nil {
			return stats, fmt.Errorf("failed to upsert post %d: %w", p.ID, err)
		}
		stats.Posts++
	}

	if err := tx.Commit(); err != nil {
		return SeedStats{}, fmt.Errorf("failed to commit: %w", err)
	}
	return stats, nil
}
