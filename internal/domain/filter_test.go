package domain

import (
	"slices"
	"strings"
	"testing"
)

func TestFilterState_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
	}{
		{"empty", NewFilterState(nil)},
		{"title only", NewFilterState(map[string]string{FilterTitle: "bolo"})},
		{"all keys", NewFilterState(map[string]string{
			FilterTitle:    "bolo de cenoura",
			FilterCategory: "3",
			FilterDiet:     "1,4",
			FilterSort:     "newest",
		})},
		{"reserved characters", NewFilterState(map[string]string{FilterTitle: "a&b=c?d #e+f/ç"})},
		{"unknown key kept", NewFilterState(map[string]string{"utm_source": "newsletter"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := ParseFilterState(tt.state.Encode())
			if !decoded.Equal(tt.state) {
				t.Errorf("round trip mismatch: got %v, want %v", decoded.values, tt.state.values)
			}
		})
	}
}

func TestFilterState_WithEmptyRemovesKey(t *testing.T) {
	state := NewFilterState(map[string]string{FilterTitle: "bolo", FilterCategory: "3"})

	next := state.With(FilterTitle, "")

	if strings.Contains(next.Encode(), FilterTitle+"=") {
		t.Errorf("encoded state still contains %q: %s", FilterTitle, next.Encode())
	}
	if next.Has(FilterTitle) {
		t.Error("expected title to be removed")
	}
	if v, _ := next.Get(FilterCategory); v != "3" {
		t.Errorf("expected category_id to be preserved, got %q", v)
	}
	// receiver is untouched
	if state.Title() != "bolo" {
		t.Errorf("original state mutated: title=%q", state.Title())
	}
}

func TestParseFilterState_Scenario(t *testing.T) {
	state := ParseFilterState("?category_id=3&title=bolo")

	id, ok := state.CategoryID()
	if !ok || id != 3 {
		t.Errorf("CategoryID() = %d, %v; want 3, true", id, ok)
	}
	if state.Title() != "bolo" {
		t.Errorf("Title() = %q, want bolo", state.Title())
	}

	encoded := state.Encode()
	for _, want := range []string{"category_id=3", "title=bolo"} {
		if !strings.Contains(encoded, want) {
			t.Errorf("encoded %q does not contain %q", encoded, want)
		}
	}
}

func TestFilterState_MalformedValuesAreAbsent(t *testing.T) {
	state := ParseFilterState("category_id=abc&diet_ids=1,x,2,,1&page=-4&sort=random")

	if _, ok := state.CategoryID(); ok {
		t.Error("non-numeric category_id should be treated as absent")
	}
	if got := state.DietIDs(); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("DietIDs() = %v, want [1 2]", got)
	}
	if state.Page() != 1 {
		t.Errorf("Page() = %d, want 1", state.Page())
	}
	if state.Sort() != SortDefault {
		t.Errorf("Sort() = %q, want default", state.Sort())
	}
}

func TestParseFilterState_SkipsEmptyAndMalformedEscapes(t *testing.T) {
	state := ParseFilterState("title=&category_id=2&bad=%zz")

	if state.Has(FilterTitle) {
		t.Error("empty value should be absent")
	}
	if state.Has("bad") {
		t.Error("malformed escape should be skipped")
	}
	if id, ok := state.CategoryID(); !ok || id != 2 {
		t.Errorf("CategoryID() = %d, %v; want 2, true", id, ok)
	}
}

func TestFilterState_WithDietIDs(t *testing.T) {
	state := NewFilterState(nil).WithDietIDs([]int64{5, 7})
	if v, _ := state.Get(FilterDiet); v != "5,7" {
		t.Errorf("diet_ids = %q, want 5,7", v)
	}
	if state.WithDietIDs(nil).Has(FilterDiet) {
		t.Error("empty diet list should remove the key")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"recipes", KindRecipe},
		{"Recipe", KindRecipe},
		{"blog", KindPost},
		{"favorites", KindFavorite},
		{"users", KindUnknown},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
