package app

import (
	"context"
	"path/filepath"
	"testing"

	"cardapio/internal/adapters/restapi"
	"cardapio/internal/config"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

func TestNew_LocalCatalogIsSeeded(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "catalog.db"), Listen: config.DefaultListen}

	c, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	if c.Catalog == nil {
		t.Fatal("expected the local catalog to be used")
	}
	page, err := c.Backend.ListItems(context.Background(), ports.ListQuery{Kind: domain.KindRecipe, Page: 1})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if page.Meta.Total == 0 {
		t.Error("expected bundled fixtures in an empty catalog")
	}
}

func TestNew_Remote(t *testing.T) {
	cfg := &config.Config{APIURL: "https://cardapio.example.com", Retries: 2}

	c, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	if _, ok := c.Backend.(*restapi.Client); !ok {
		t.Errorf("expected REST client, got %T", c.Backend)
	}
	if c.Catalog != nil {
		t.Error("catalog should not be opened for a remote backend")
	}

	if _, err := New(context.Background(), &config.Config{APIURL: "ftp://nope"}, nil); err == nil {
		t.Error("expected error for invalid api url")
	}
}

func TestShareURL(t *testing.T) {
	tests := []struct {
		cfg  config.Config
		want string
	}{
		{config.Config{Listen: "localhost:8080"}, "http://localhost:8080/recipes?title=bolo"},
		{config.Config{Listen: ":8080"}, "http://localhost:8080/recipes?title=bolo"},
		{config.Config{Listen: "0.0.0.0:8080"}, "http://0.0.0.0:8080/recipes?title=bolo"},
		{config.Config{APIURL: "https://cardapio.example.com/"}, "https://cardapio.example.com/recipes?title=bolo"},
	}

	for _, tt := range tests {
		c := &Context{Config: &tt.cfg}
		if got := c.ShareURL("/recipes?title=bolo"); got != tt.want {
			t.Errorf("ShareURL() = %q, want %q", got, tt.want)
		}
	}
}
