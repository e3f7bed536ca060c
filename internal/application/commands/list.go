package commands

import (
	"context"
	"fmt"

	"cardapio/internal/application"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// ListCommand fetches one page of a list
type ListCommand struct {
	backend ports.Backend
	Kind    domain.Kind
	Filters domain.FilterState
	Page    int
	PerPage int
}

// NewListCommand creates a new ListCommand. Page and page size come from the
// filters when present.
func NewListCommand(backend ports.Backend, kind domain.Kind, filters domain.FilterState) *ListCommand {
	return &ListCommand{
		backend: backend,
		Kind:    kind,
		Filters: filters,
		Page:    filters.Page(),
		PerPage: filters.PerPage(),
	}
}

// Validate checks if the list request is valid
func (c *ListCommand) Validate() error {
	if err := application.ValidateKind(c.Kind, false); err != nil {
		return err
	}
	if c.Page < 1 {
		return &application.ValidationError{Field: "page", Message: fmt.Sprintf("page must be >= 1, got %d", c.Page)}
	}
	return application.ValidatePerPage(c.PerPage)
}

// Query returns the backend query this command will run
func (c *ListCommand) Query() ports.ListQuery {
	perPage := c.PerPage
	if perPage == 0 {
		perPage = domain.DefaultPerPage
	}
	return ports.ListQuery{
		Kind:    c.Kind,
		Filters: c.Filters.Without(domain.FilterPage).Without(domain.FilterPerPage),
		Page:    c.Page,
		PerPage: perPage,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*domain.Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	page, err := c.backend.ListItems(ctx, c.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.Kind.Path(), err)
	}
	if err := page.Meta.Validate(len(page.Data)); err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrBadPagination, err)
	}
	return page, nil
}

// ListAllCommand follows pagination until the last page or MaxItems
type ListAllCommand struct {
	backend  ports.Backend
	Kind     domain.Kind
	Filters  domain.FilterState
	MaxItems int
}

// NewListAllCommand creates a new ListAllCommand
func NewListAllCommand(backend ports.Backend, kind domain.Kind, filters domain.FilterState, maxItems int) *ListAllCommand {
	return &ListAllCommand{
		backend:  backend,
		Kind:     kind,
		Filters:  filters,
		MaxItems: maxItems,
	}
}

// Execute runs the command and returns every collected item
func (c *ListAllCommand) Execute(ctx context.Context) ([]domain.ListItem, error) {
	var items []domain.ListItem
	filters := c.Filters.Without(domain.FilterPage)

	for pageNum := 1; ; pageNum++ {
		cmd := NewListCommand(c.backend, c.Kind, filters)
		cmd.Page = pageNum
		page, err := cmd.Execute(ctx)
		if err != nil {
			return items, err
		}

		items = append(items, page.Data...)
		if c.MaxItems > 0 && len(items) >= c.MaxItems {
			return items[:c.MaxItems], nil
		}
		if !page.Meta.HasNext() {
			return items, nil
		}
	}
}
