package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cardapio/internal/adapters/tui/views"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

type emptyBackend struct{}

func (emptyBackend) ListItems(_ context.Context, q ports.ListQuery) (*domain.Page, error) {
	return &domain.Page{Meta: domain.NewPaginationMeta(0, q.PerPage, q.Page)}, nil
}

func (emptyBackend) ListCategories(context.Context) ([]domain.Category, error) { return nil, nil }

func (emptyBackend) ListDietTags(context.Context) ([]domain.DietTag, error) { return nil, nil }

func (emptyBackend) SetFavorite(context.Context, domain.Kind, int64, bool) error { return nil }

func (emptyBackend) Delete(context.Context, domain.Kind, int64) error { return nil }

func TestApp_SwitchKindMountsNewList(t *testing.T) {
	a := NewApp(emptyBackend{}, domain.KindRecipe, "title=bolo", views.ListOptions{})
	first := a.List()

	_, cmd := a.Update(views.SwitchKindMsg{Kind: domain.KindPost})

	if cmd == nil {
		t.Error("expected the new list to start loading")
	}
	if a.List() == first {
		t.Fatal("expected a fresh list model")
	}
	if a.List().Kind() != domain.KindPost {
		t.Errorf("kind = %v, want Post", a.List().Kind())
	}
	if a.List().URL() != "/posts" {
		t.Errorf("URL() = %q, filters must not carry over", a.List().URL())
	}
}

func TestApp_HelpRoundTrip(t *testing.T) {
	a := NewApp(emptyBackend{}, domain.KindRecipe, "", views.ListOptions{})

	a.Update(views.SwitchToHelpMsg{})
	if a.state != ViewHelp {
		t.Fatalf("state = %v, want help", a.state)
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected esc to close help")
	}
	a.Update(cmd())
	if a.state != ViewList {
		t.Errorf("state = %v, want list", a.state)
	}
}
