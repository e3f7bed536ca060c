package commands

import (
	"context"

	"cardapio/internal/application"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// FavoriteResult contains the result of a favorite change
type FavoriteResult struct {
	ID        int64
	Favorited bool
	Message   string
}

// SetFavoriteCommand marks or unmarks an item as favorite
type SetFavoriteCommand struct {
	backend   ports.Backend
	Kind      domain.Kind
	ID        int64
	Favorited bool
}

// NewSetFavoriteCommand creates a new SetFavoriteCommand. Items listed under
// favorites are recipes, so the kind is mapped to the owning kind.
func NewSetFavoriteCommand(backend ports.Backend, kind domain.Kind, id int64, favorited bool) *SetFavoriteCommand {
	return &SetFavoriteCommand{
		backend:   backend,
		Kind:      kind.ItemKind(),
		ID:        id,
		Favorited: favorited,
	}
}

// Validate checks if the favorite operation is valid
func (c *SetFavoriteCommand) Validate() error {
	if err := application.ValidateKind(c.Kind, true); err != nil {
		return err
	}
	return application.ValidateID("id", c.ID)
}

// Execute runs the favorite command
func (c *SetFavoriteCommand) Execute(ctx context.Context) (*FavoriteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	action := "favorite"
	if !c.Favorited {
		action = "unfavorite"
	}
	if err := c.backend.SetFavorite(ctx, c.Kind, c.ID, c.Favorited); err != nil {
		return nil, &application.MutationError{Action: action, ID: c.ID, Err: err}
	}

	msg := "Added to favorites"
	if !c.Favorited {
		msg = "Removed from favorites"
	}
	return &FavoriteResult{ID: c.ID, Favorited: c.Favorited, Message: msg}, nil
}
