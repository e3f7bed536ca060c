package main

import (
	"testing"

	"cardapio/internal/domain"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		list      string
		arg       string
		wantKind  domain.Kind
		wantQuery string
		wantErr   bool
	}{
		{"recipes", "", domain.KindRecipe, "", false},
		{"posts", "sort=title", domain.KindPost, "sort=title", false},
		{"recipes", "/favorites?title=bolo", domain.KindFavorite, "title=bolo", false},
		{"recipes", "http://localhost:8080/posts?category_id=2", domain.KindPost, "category_id=2", false},
		{"drinks", "", domain.KindUnknown, "", true},
	}

	for _, tt := range tests {
		kind, query, err := parseTarget(tt.list, tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTarget(%q, %q) error = %v, wantErr %v", tt.list, tt.arg, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if kind != tt.wantKind || query != tt.wantQuery {
			t.Errorf("parseTarget(%q, %q) = %v, %q; want %v, %q", tt.list, tt.arg, kind, query, tt.wantKind, tt.wantQuery)
		}
	}
}
