package listing

import (
	"context"

	"cardapio/internal/application/commands"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// Result is the outcome of a list fetch. Callers decide how to render a
// failure; nothing here recovers from it.
type Result struct {
	Kind    domain.Kind
	Filters domain.FilterState
	Page    *domain.Page
	Err     error
	// Append marks a "load more" fetch whose items go after the current ones
	Append bool
}

// Fetch runs a list command and wraps its outcome
func Fetch(ctx context.Context, backend ports.Backend, kind domain.Kind, filters domain.FilterState) Result {
	page, err := commands.NewListCommand(backend, kind, filters).Execute(ctx)
	return Result{Kind: kind, Filters: filters, Page: page, Err: err}
}

// FetchNext fetches the page after meta, for appending
func FetchNext(ctx context.Context, backend ports.Backend, kind domain.Kind, filters domain.FilterState, meta domain.PaginationMeta) Result {
	cmd := commands.NewListCommand(backend, kind, filters)
	cmd.Page = meta.NextPage()
	if cmd.PerPage == 0 {
		cmd.PerPage = meta.PerPage
	}
	page, err := cmd.Execute(ctx)
	return Result{Kind: kind, Filters: filters, Page: page, Err: err, Append: true}
}

// ApplyTo merges a successful result into s: appended for "load more",
// wholesale replacement otherwise. A failed result leaves s untouched and
// returns the error.
func (r Result) ApplyTo(s *Store) error {
	if r.Err != nil {
		return r.Err
	}
	if r.Page == nil {
		s.Replace(nil)
		return nil
	}
	if r.Append {
		s.Append(r.Page.Data)
	} else {
		s.Replace(r.Page.Data)
	}
	return nil
}

// Meta returns the pagination of a successful fetch
func (r Result) Meta() (domain.PaginationMeta, bool) {
	if r.Err != nil || r.Page == nil {
		return domain.PaginationMeta{}, false
	}
	return r.Page.Meta, true
}
