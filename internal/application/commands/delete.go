package commands

import (
	"context"
	"fmt"

	"cardapio/internal/application"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID int64
	Message   string
}

// DeleteCommand deletes an item by ID
type DeleteCommand struct {
	backend ports.Backend
	Kind    domain.Kind
	ID      int64
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(backend ports.Backend, kind domain.Kind, id int64) *DeleteCommand {
	return &DeleteCommand{
		backend: backend,
		Kind:    kind.ItemKind(),
		ID:      id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateKind(c.Kind, true); err != nil {
		return err
	}
	return application.ValidateID("id", c.ID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.backend.Delete(ctx, c.Kind, c.ID); err != nil {
		return nil, &application.MutationError{Action: "delete", ID: c.ID, Err: err}
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s %d", c.Kind, c.ID),
	}, nil
}
