package domain

import "fmt"

// DefaultPerPage is used when neither the caller nor the config sets a page size
const DefaultPerPage = 12

// PaginationMeta describes where a page sits in the full result set
type PaginationMeta struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// NewPaginationMeta derives LastPage from total and perPage. An empty result
// still has one (empty) page.
func NewPaginationMeta(total, perPage, currentPage int) PaginationMeta {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	last := max(1, (total+perPage-1)/perPage)
	return PaginationMeta{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: max(1, currentPage),
		LastPage:    last,
	}
}

// HasNext reports whether another page can be fetched
func (m PaginationMeta) HasNext() bool {
	return m.CurrentPage < m.LastPage
}

// NextPage returns the page after the current one, or 0 when on the last page
func (m PaginationMeta) NextPage() int {
	if !m.HasNext() {
		return 0
	}
	return m.CurrentPage + 1
}

// Offset returns the zero-based index of the first item of the current page
func (m PaginationMeta) Offset() int {
	return (max(1, m.CurrentPage) - 1) * m.PerPage
}

// Validate checks the meta against the page it came with
func (m PaginationMeta) Validate(itemCount int) error {
	switch {
	case m.Total < 0:
		return fmt.Errorf("pagination: negative total %d", m.Total)
	case m.PerPage <= 0:
		return fmt.Errorf("pagination: per_page must be positive, got %d", m.PerPage)
	case m.CurrentPage < 1:
		return fmt.Errorf("pagination: current_page must be >= 1, got %d", m.CurrentPage)
	case m.CurrentPage > m.LastPage:
		return fmt.Errorf("pagination: current_page %d exceeds last_page %d", m.CurrentPage, m.LastPage)
	case m.CurrentPage < m.LastPage && itemCount != m.PerPage:
		return fmt.Errorf("pagination: page %d of %d has %d items, want %d", m.CurrentPage, m.LastPage, itemCount, m.PerPage)
	}
	return nil
}
