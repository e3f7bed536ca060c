package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// LoadTaxonomyCommand fetches categories and diet tags, once per list mount
type LoadTaxonomyCommand struct {
	backend ports.Backend
}

// NewLoadTaxonomyCommand creates a new LoadTaxonomyCommand
func NewLoadTaxonomyCommand(backend ports.Backend) *LoadTaxonomyCommand {
	return &LoadTaxonomyCommand{backend: backend}
}

// Execute fetches both collections concurrently
func (c *LoadTaxonomyCommand) Execute(ctx context.Context) (*domain.Taxonomy, error) {
	var tax domain.Taxonomy

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := c.backend.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		tax.Categories = categories
		return nil
	})
	g.Go(func() error {
		tags, err := c.backend.ListDietTags(ctx)
		if err != nil {
			return fmt.Errorf("failed to load diet tags: %w", err)
		}
		tax.DietTags = tags
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &tax, nil
}
