package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cardapio/internal/adapters/sqlite"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

func setupTestBackend(t *testing.T) *sqlite.Catalog {
	t.Helper()

	c := sqlite.NewCatalog()
	if err := c.Open(sqlite.MemoryDSN); err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if _, err := sqlite.Seed(c, sqlite.DefaultFixtures()); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
	return c
}

// call runs handler with JSON-like arguments (numbers as float64)
func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text, res.IsError
	case *mcp.TextContent:
		return c.Text, res.IsError
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return "", false
}

func TestListHandler(t *testing.T) {
	handler := listHandler(setupTestBackend(t))

	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		wantErr bool
	}{
		{
			name: "title search",
			args: map[string]any{"kind": "recipes", "title": "bolo"},
			want: []string{"Bolo de fubá", "Bolo de cenoura", "page 1 of 1 (2 total)"},
		},
		{
			name: "category and diet",
			args: map[string]any{"kind": "recipes", "category_id": float64(1), "diet_ids": "3"},
			want: []string{"1   Bolo de fubá", "(1 total)"},
		},
		{
			name: "favorites",
			args: map[string]any{"kind": "favorites"},
			want: []string{"★ Salada de grão-de-bico", "★ Bolo de cenoura"},
		},
		{
			name: "paged",
			args: map[string]any{"kind": "recipes", "page": float64(2), "per_page": float64(4)},
			want: []string{"page 2 of 2 (6 total)"},
		},
		{
			name: "no match",
			args: map[string]any{"kind": "posts", "title": "lasanha"},
			want: []string{"No results."},
		},
		{
			name:    "unknown kind",
			args:    map[string]any{"kind": "drinks"},
			want:    []string{"unknown kind"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, handler, tt.args)
			if isErr != tt.wantErr {
				t.Fatalf("IsError = %v, want %v (%s)", isErr, tt.wantErr, text)
			}
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("result %q does not contain %q", text, w)
				}
			}
		})
	}
}

func TestTaxonomyHandlers(t *testing.T) {
	backend := setupTestBackend(t)

	text, _ := call(t, categoriesHandler(backend), nil)
	if !strings.Contains(text, "1  🎂 Bolos") {
		t.Errorf("categories = %q", text)
	}

	text, _ = call(t, dietTagsHandler(backend), nil)
	if !strings.Contains(text, "2  Vegano") {
		t.Errorf("diet tags = %q", text)
	}
}

func TestListURLHandler(t *testing.T) {
	text, isErr := call(t, listURLHandler(), map[string]any{
		"kind":        "recipes",
		"title":       "bolo de fubá",
		"category_id": float64(1),
		"sort":        "quickest",
	})
	if isErr {
		t.Fatalf("unexpected error: %s", text)
	}
	if want := "/recipes?category_id=1&sort=quickest&title=bolo+de+fub%C3%A1"; text != want {
		t.Errorf("list_url = %q, want %q", text, want)
	}

	text, _ = call(t, listURLHandler(), map[string]any{"kind": "posts"})
	if text != "/posts" {
		t.Errorf("list_url = %q, want /posts", text)
	}
}

func TestWriteHandlers(t *testing.T) {
	backend := setupTestBackend(t)
	ctx := context.Background()

	text, isErr := call(t, favoriteHandler(backend), map[string]any{"kind": "recipes", "id": float64(1), "favorited": true})
	if isErr {
		t.Fatalf("favorite failed: %s", text)
	}
	page, err := backend.ListItems(ctx, ports.ListQuery{Kind: domain.KindFavorite, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if page.Meta.Total != 3 {
		t.Errorf("favorites total = %d, want 3", page.Meta.Total)
	}

	if _, isErr := call(t, favoriteHandler(backend), map[string]any{"kind": "recipes", "id": float64(1)}); !isErr {
		t.Error("expected error without favorited")
	}
	if _, isErr := call(t, favoriteHandler(backend), map[string]any{"kind": "recipes", "id": float64(999), "favorited": true}); !isErr {
		t.Error("expected error for unknown id")
	}

	text, isErr = call(t, deleteHandler(backend), map[string]any{"kind": "posts", "id": float64(101)})
	if isErr {
		t.Fatalf("delete failed: %s", text)
	}
	if _, isErr := call(t, deleteHandler(backend), map[string]any{"kind": "posts", "id": float64(101)}); !isErr {
		t.Error("expected error deleting twice")
	}
	if _, isErr := call(t, deleteHandler(backend), map[string]any{"kind": "favorites", "id": float64(2)}); !isErr {
		t.Error("expected error deleting from favorites")
	}
	if _, isErr := call(t, deleteHandler(backend), map[string]any{"kind": "recipes"}); !isErr {
		t.Error("expected error without id")
	}
}
