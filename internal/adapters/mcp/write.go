package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cardapio/internal/application/commands"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// RegisterWriteTools adds the catalog mutations to the MCP server.
func RegisterWriteTools(s *server.MCPServer, backend ports.Backend) {
	s.AddTool(favoriteTool(), favoriteHandler(backend))
	s.AddTool(deleteTool(), deleteHandler(backend))
}

func idFromRequest(req mcp.CallToolRequest) (int64, error) {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return 0, fmt.Errorf("id is required")
	}
	return int64(id), nil
}

// --- favorite ---

func favoriteTool() mcp.Tool {
	return mcp.NewTool("favorite",
		mcp.WithDescription("Mark or unmark a recipe or post as favorite."),
		mcp.WithString("kind",
			mcp.Description("recipes or posts"),
			mcp.Required(),
			mcp.Enum("recipes", "posts"),
		),
		mcp.WithNumber("id",
			mcp.Description("Item id"),
			mcp.Required(),
		),
		mcp.WithBoolean("favorited",
			mcp.Description("true to favorite, false to unfavorite"),
			mcp.Required(),
		),
	)
}

func favoriteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := kindFromRequest(req)
		if err != nil {
			return toolError(err)
		}
		id, err := idFromRequest(req)
		if err != nil {
			return toolError(err)
		}
		favorited, err := req.RequireBool("favorited")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewSetFavoriteCommand(backend, kind, id, favorited).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s: %s %d", result.Message, kind.ItemKind(), result.ID)), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a recipe or post by id."),
		mcp.WithString("kind",
			mcp.Description("recipes or posts"),
			mcp.Required(),
			mcp.Enum("recipes", "posts"),
		),
		mcp.WithNumber("id",
			mcp.Description("Item id"),
			mcp.Required(),
		),
	)
}

func deleteHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := kindFromRequest(req)
		if err != nil {
			return toolError(err)
		}
		if kind == domain.KindFavorite {
			return toolError(fmt.Errorf("favorites are recipes; delete them as recipes"))
		}
		id, err := idFromRequest(req)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewDeleteCommand(backend, kind, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}
