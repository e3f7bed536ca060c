package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cardapio/internal/application/commands"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
	"cardapio/internal/urlstate"
)

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, backend ports.Backend) {
	s.AddTool(listTool(), listHandler(backend))
	s.AddTool(categoriesTool(), categoriesHandler(backend))
	s.AddTool(dietTagsTool(), dietTagsHandler(backend))
	s.AddTool(listURLTool(), listURLHandler())
}

// filterOptions are the list filters shared by list and list_url
func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("kind",
			mcp.Description("Which list: recipes, posts or favorites"),
			mcp.Required(),
			mcp.Enum("recipes", "posts", "favorites"),
		),
		mcp.WithString("title",
			mcp.Description("Free-text search on the title"),
		),
		mcp.WithNumber("category_id",
			mcp.Description("Only items in this category"),
		),
		mcp.WithString("diet_ids",
			mcp.Description("Comma separated diet tag ids; items must carry all of them"),
		),
		mcp.WithString("sort",
			mcp.Description("Ordering"),
			mcp.Enum("newest", "oldest", "title", "quickest"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number"),
		),
		mcp.WithNumber("per_page",
			mcp.Description("Page size"),
		),
	}
}

// filtersFromRequest maps tool arguments onto the query string keys of a
// list page. Absent arguments are absent filters.
func filtersFromRequest(req mcp.CallToolRequest) domain.FilterState {
	pairs := map[string]string{
		domain.FilterTitle: req.GetString("title", ""),
		domain.FilterDiet:  req.GetString("diet_ids", ""),
		domain.FilterSort:  req.GetString("sort", ""),
	}
	for _, key := range []string{domain.FilterCategory, domain.FilterPage, domain.FilterPerPage} {
		if n := req.GetInt(key, 0); n > 0 {
			pairs[key] = strconv.Itoa(n)
		}
	}
	return domain.NewFilterState(pairs)
}

func kindFromRequest(req mcp.CallToolRequest) (domain.Kind, error) {
	raw := req.GetString("kind", "")
	kind := domain.ParseKind(raw)
	if kind == domain.KindUnknown {
		return kind, fmt.Errorf("unknown kind %q (expected recipes, posts or favorites)", raw)
	}
	return kind, nil
}

// --- list ---

func listTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List one page of recipes, posts or favorites, filtered the same way as the list pages."),
	}, filterOptions()...)
	return mcp.NewTool("list", opts...)
}

func listHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := kindFromRequest(req)
		if err != nil {
			return toolError(err)
		}

		page, err := commands.NewListCommand(backend, kind, filtersFromRequest(req)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(page.Data) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}
		var sb strings.Builder
		for _, it := range page.Data {
			sb.WriteString(formatItem(it))
			sb.WriteByte('\n')
		}
		m := page.Meta
		fmt.Fprintf(&sb, "page %d of %d (%d total)\n", m.CurrentPage, m.LastPage, m.Total)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- categories ---

func categoriesTool() mcp.Tool {
	return mcp.NewTool("categories",
		mcp.WithDescription("List recipe and post categories with their ids."),
	)
}

func categoriesHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tax, err := commands.NewLoadTaxonomyCommand(backend).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(tax.Categories, formatCategory)
	}
}

// --- diet_tags ---

func dietTagsTool() mcp.Tool {
	return mcp.NewTool("diet_tags",
		mcp.WithDescription("List diet tags with their ids."),
	)
}

func dietTagsHandler(backend ports.Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tax, err := commands.NewLoadTaxonomyCommand(backend).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(tax.DietTags, formatDietTag)
	}
}

// --- list_url ---

func listURLTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Build the shareable path of a list page for the given filters."),
	}, filterOptions()...)
	return mcp.NewTool("list_url", opts...)
}

func listURLHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := kindFromRequest(req)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(urlstate.Target("/"+kind.Path(), filtersFromRequest(req).Encode())), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatCategory(c domain.Category) string {
	return fmt.Sprintf("%d  %s %s", c.ID, c.Icon.Glyph(), c.Name)
}

func formatDietTag(d domain.DietTag) string {
	return fmt.Sprintf("%d  %s", d.ID, d.Name)
}

func formatItem(it domain.ListItem) string {
	fav := " "
	if it.IsFavorited {
		fav = "★"
	}
	return fmt.Sprintf("%d %s %s", it.ID, fav, it.Title)
}
