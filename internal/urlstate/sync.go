// Package urlstate keeps list filters in the query string, which is the only
// place filter state lives between reloads and shares.
package urlstate

import (
	"net/url"
	"strings"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// Set returns rawQuery with key set to value. An empty value removes the key.
// Every other key, including repeated ones, is kept as is. Output order is
// not part of the contract.
func Set(rawQuery, key, value string) string {
	vals := parse(rawQuery)
	if value == "" {
		vals.Del(key)
	} else {
		vals.Set(key, value)
	}
	return vals.Encode()
}

// SetAll applies several changes at once, with the same rules as Set
func SetAll(rawQuery string, changes map[string]string) string {
	vals := parse(rawQuery)
	for k, v := range changes {
		if v == "" {
			vals.Del(k)
		} else {
			vals.Set(k, v)
		}
	}
	return vals.Encode()
}

// Target joins path and query, dropping the '?' for an empty query
func Target(path, rawQuery string) string {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// Canonical re-encodes rawQuery so two spellings of the same filters compare equal
func Canonical(rawQuery string) string {
	return parse(rawQuery).Encode()
}

func parse(rawQuery string) url.Values {
	vals, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if vals == nil {
		vals = url.Values{}
	}
	return vals
}

// Synchronizer owns the query string of one mounted list page and turns
// filter changes into navigations. It is not safe for concurrent use; it
// belongs to the event loop of the page that created it.
type Synchronizer struct {
	path  string
	query string
	nav   ports.Navigator
}

// New creates a Synchronizer for path, starting from the incoming query
func New(path, rawQuery string, nav ports.Navigator) *Synchronizer {
	return &Synchronizer{
		path:  path,
		query: Canonical(rawQuery),
		nav:   nav,
	}
}

// Update sets key to value (or removes it when value is empty) and navigates
// to the resulting URL. It returns false without navigating when the query
// string would not change.
func (s *Synchronizer) Update(key, value string) bool {
	return s.apply(Set(s.query, key, value))
}

// UpdateAll applies several keys in a single navigation
func (s *Synchronizer) UpdateAll(changes map[string]string) bool {
	return s.apply(SetAll(s.query, changes))
}

func (s *Synchronizer) apply(next string) bool {
	if next == s.query {
		return false
	}
	s.query = next
	if s.nav != nil {
		s.nav.Navigate(Target(s.path, next))
	}
	return true
}

// Reset adopts a query that changed outside the synchronizer (history, reload)
// without navigating
func (s *Synchronizer) Reset(rawQuery string) {
	s.query = Canonical(rawQuery)
}

// Path returns the page path
func (s *Synchronizer) Path() string {
	return s.path
}

// Query returns the current query string without '?'
func (s *Synchronizer) Query() string {
	return s.query
}

// URL returns path plus query, the form that is shared or bookmarked
func (s *Synchronizer) URL() string {
	return Target(s.path, s.query)
}

// Filters decodes the current query string
func (s *Synchronizer) Filters() domain.FilterState {
	return domain.ParseFilterState(s.query)
}
