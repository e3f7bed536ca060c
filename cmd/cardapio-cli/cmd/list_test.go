package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestFilterFlags_Apply(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		args    []string
		want    string
		wantErr bool
	}{
		{"no flags keeps query", "page=2&title=bolo", nil, "page=2&title=bolo", false},
		{"title resets page", "page=2", []string{"--title", "bolo"}, "title=bolo", false},
		{"explicit page", "title=bolo", []string{"--page", "3"}, "page=3&title=bolo", false},
		{"empty title removes it", "sort=title&title=bolo", []string{"--title", ""}, "sort=title", false},
		{"zero category removes it", "category_id=2", []string{"--category", "0"}, "", false},
		{"diet list is normalized", "", []string{"--diet", "3, 1,x,3"}, "diet_ids=3%2C1", false},
		{"sort", "", []string{"-s", "quickest"}, "sort=quickest", false},
		{"unknown sort", "", []string{"--sort", "spicy"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f filterFlags
			c := &cobra.Command{Use: "test"}
			f.register(c)
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			got, err := f.apply(c, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKindArg(t *testing.T) {
	if _, err := parseKindArg("drinks"); err == nil {
		t.Error("expected error for unknown list")
	}
	if kind, err := parseKindArg("favorites"); err != nil || kind.Path() != "favorites" {
		t.Errorf("parseKindArg(favorites) = %v, %v", kind, err)
	}
}
