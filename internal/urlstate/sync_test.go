package urlstate

import (
	"net/url"
	"strings"
	"testing"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		query string
		key   string
		value string
		want  url.Values
	}{
		{
			name:  "insert into empty",
			query: "",
			key:   "title",
			value: "bolo",
			want:  url.Values{"title": {"bolo"}},
		},
		{
			name:  "overwrite keeps others",
			query: "?title=pao&category_id=3",
			key:   "title",
			value: "bolo",
			want:  url.Values{"title": {"bolo"}, "category_id": {"3"}},
		},
		{
			name:  "empty removes key",
			query: "title=bolo&category_id=3",
			key:   "title",
			value: "",
			want:  url.Values{"category_id": {"3"}},
		},
		{
			name:  "removing absent key is harmless",
			query: "category_id=3",
			key:   "sort",
			value: "",
			want:  url.Values{"category_id": {"3"}},
		},
		{
			name:  "repeated unrelated key preserved",
			query: "tag=a&tag=b",
			key:   "sort",
			value: "newest",
			want:  url.Values{"tag": {"a", "b"}, "sort": {"newest"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := url.ParseQuery(Set(tt.query, tt.key, tt.value))
			if err != nil {
				t.Fatalf("Set produced an unparseable query: %v", err)
			}
			if got.Encode() != tt.want.Encode() {
				t.Errorf("Set() = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestTarget(t *testing.T) {
	if got := Target("/recipes", ""); got != "/recipes" {
		t.Errorf("Target with empty query = %q, want bare path", got)
	}
	if got := Target("/recipes", "?title=bolo"); got != "/recipes?title=bolo" {
		t.Errorf("Target = %q", got)
	}
}

func TestSynchronizer_UpdateNavigates(t *testing.T) {
	var visited []string
	sync := New("/recipes", "category_id=3", ports.NavigatorFunc(func(target string) {
		visited = append(visited, target)
	}))

	if !sync.Update("title", "bolo") {
		t.Fatal("expected Update to navigate")
	}
	if len(visited) != 1 {
		t.Fatalf("expected 1 navigation, got %d", len(visited))
	}
	if !strings.HasPrefix(visited[0], "/recipes?") {
		t.Errorf("unexpected target %q", visited[0])
	}

	filters := sync.Filters()
	if filters.Title() != "bolo" {
		t.Errorf("Title() = %q, want bolo", filters.Title())
	}
	if id, ok := filters.CategoryID(); !ok || id != 3 {
		t.Errorf("category_id lost: %d, %v", id, ok)
	}
}

func TestSynchronizer_NoOpWhenUnchanged(t *testing.T) {
	calls := 0
	sync := New("/recipes", "title=bolo&category_id=3", ports.NavigatorFunc(func(string) { calls++ }))

	if sync.Update("title", "bolo") {
		t.Error("setting the same value should not navigate")
	}
	if sync.Update("sort", "") {
		t.Error("removing an absent key should not navigate")
	}
	if calls != 0 {
		t.Errorf("expected no navigations, got %d", calls)
	}
}

func TestSynchronizer_ClearingLastKeyNavigatesToBarePath(t *testing.T) {
	var last string
	sync := New("/posts", "title=natal", ports.NavigatorFunc(func(target string) { last = target }))

	sync.Update("title", "")

	if last != "/posts" {
		t.Errorf("expected bare path, got %q", last)
	}
	if sync.URL() != "/posts" {
		t.Errorf("URL() = %q, want /posts", sync.URL())
	}
}

func TestSynchronizer_UpdateAll(t *testing.T) {
	calls := 0
	sync := New("/recipes", "page=4&title=bolo", ports.NavigatorFunc(func(string) { calls++ }))

	sync.UpdateAll(map[string]string{
		domain.FilterCategory: "2",
		domain.FilterPage:     "",
	})

	if calls != 1 {
		t.Errorf("expected a single navigation, got %d", calls)
	}
	filters := sync.Filters()
	if filters.Has(domain.FilterPage) {
		t.Error("page should have been cleared")
	}
	if filters.Title() != "bolo" {
		t.Error("title should have been preserved")
	}
}

func TestSynchronizer_Reset(t *testing.T) {
	calls := 0
	sync := New("/recipes", "", ports.NavigatorFunc(func(string) { calls++ }))

	sync.Reset("?title=bolo")

	if calls != 0 {
		t.Error("Reset must not navigate")
	}
	if sync.Filters().Title() != "bolo" {
		t.Errorf("Reset did not adopt the query: %q", sync.Query())
	}
}
