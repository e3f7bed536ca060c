package domain

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Filter keys as they appear in list page query strings
const (
	FilterTitle    = "title"
	FilterCategory = "category_id"
	FilterDiet     = "diet_ids"
	FilterSort     = "sort"
	FilterPage     = "page"
	FilterPerPage  = "per_page"
)

// SortKey is the closed set of orderings the list endpoints accept
type SortKey string

const (
	SortDefault SortKey = ""
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortTitle   SortKey = "title"
	SortQuick   SortKey = "quickest"
)

// SortKeys lists the selectable orderings in display order
var SortKeys = []SortKey{SortNewest, SortOldest, SortTitle, SortQuick}

// ParseSortKey returns SortDefault for anything it does not recognize
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k
	}
	return SortDefault
}

// FilterState is the set of active list filters. It is a value type: every
// mutation returns a new FilterState and leaves the receiver untouched.
// Absent and empty are the same thing.
type FilterState struct {
	values map[string]string
}

// NewFilterState builds a FilterState from key/value pairs, dropping empty values
func NewFilterState(pairs map[string]string) FilterState {
	fs := FilterState{values: make(map[string]string, len(pairs))}
	for k, v := range pairs {
		if k == "" || v == "" {
			continue
		}
		fs.values[k] = v
	}
	return fs
}

// ParseFilterState decodes a query string (with or without a leading '?').
// Malformed escapes are skipped rather than reported; only the first value
// of a repeated key is kept.
func ParseFilterState(rawQuery string) FilterState {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	// ParseQuery still returns every pair it could decode alongside the error
	vals, _ := url.ParseQuery(rawQuery)
	return FilterStateFromValues(vals)
}

// FilterStateFromValues converts url.Values into a FilterState
func FilterStateFromValues(vals url.Values) FilterState {
	fs := FilterState{values: make(map[string]string, len(vals))}
	for k, vs := range vals {
		if k == "" || len(vs) == 0 || vs[0] == "" {
			continue
		}
		fs.values[k] = vs[0]
	}
	return fs
}

// Encode returns the query string without a leading '?'. Keys come out
// sorted, but callers must not rely on any particular order.
func (f FilterState) Encode() string {
	return f.Values().Encode()
}

// Values returns the filters as url.Values
func (f FilterState) Values() url.Values {
	vals := make(url.Values, len(f.values))
	for k, v := range f.values {
		vals.Set(k, v)
	}
	return vals
}

// With returns a copy with key set to value, or with key removed when value is empty
func (f FilterState) With(key, value string) FilterState {
	next := FilterState{values: maps.Clone(f.values)}
	if next.values == nil {
		next.values = make(map[string]string)
	}
	if value == "" {
		delete(next.values, key)
	} else {
		next.values[key] = value
	}
	return next
}

// Without returns a copy with key removed
func (f FilterState) Without(key string) FilterState {
	return f.With(key, "")
}

// Get returns the raw value for key
func (f FilterState) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is set
func (f FilterState) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Len returns the number of active filters
func (f FilterState) Len() int {
	return len(f.values)
}

// Keys returns the active keys, sorted
func (f FilterState) Keys() []string {
	return slices.Sorted(maps.Keys(f.values))
}

// Equal compares two states ignoring key order
func (f FilterState) Equal(other FilterState) bool {
	return maps.Equal(f.values, other.values)
}

// Title returns the free-text search filter
func (f FilterState) Title() string {
	return f.values[FilterTitle]
}

// CategoryID returns the category filter. A non-numeric value counts as absent.
func (f FilterState) CategoryID() (int64, bool) {
	return parseID(f.values[FilterCategory])
}

// DietIDs returns the diet tag filter, skipping malformed entries
func (f FilterState) DietIDs() []int64 {
	return ParseIDs(f.values[FilterDiet])
}

// WithDietIDs returns a copy with the diet filter replaced by ids
func (f FilterState) WithDietIDs(ids []int64) FilterState {
	return f.With(FilterDiet, JoinIDs(ids))
}

// Sort returns the requested ordering, SortDefault if absent or unknown
func (f FilterState) Sort() SortKey {
	return ParseSortKey(f.values[FilterSort])
}

// Page returns the 1-based page number, defaulting to 1
func (f FilterState) Page() int {
	n, err := strconv.Atoi(f.values[FilterPage])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PerPage returns the requested page size or 0 when absent
func (f FilterState) PerPage() int {
	n, err := strconv.Atoi(f.values[FilterPerPage])
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// ParseIDs parses a comma separated id list, skipping malformed and
// repeated entries
func ParseIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for part := range strings.SplitSeq(raw, ",") {
		if id, ok := parseID(part); ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// JoinIDs renders ids as a comma separated list
func JoinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
