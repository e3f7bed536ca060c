package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cardapio/internal/application"
	"cardapio/internal/application/commands"
	"cardapio/internal/domain"
	"cardapio/internal/urlstate"
)

// filterFlags are the list filters every listing command accepts
type filterFlags struct {
	title    string
	category int64
	diets    string
	sort     string
	page     int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "search by title")
	cmd.Flags().Int64VarP(&f.category, "category", "c", 0, "category id")
	cmd.Flags().StringVarP(&f.diets, "diet", "d", "", "comma separated diet tag ids")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "newest, oldest, title or quickest")
	cmd.Flags().IntVarP(&f.page, "page", "p", 0, "page number")
}

// apply overlays the flags that were set on rawQuery. A flag set to an
// empty value (or 0) removes the filter.
func (f *filterFlags) apply(cmd *cobra.Command, rawQuery string) (string, error) {
	changes := make(map[string]string)
	flags := cmd.Flags()
	if flags.Changed("title") {
		changes[domain.FilterTitle] = strings.TrimSpace(f.title)
	}
	if flags.Changed("category") {
		changes[domain.FilterCategory] = positive(f.category)
	}
	if flags.Changed("diet") {
		changes[domain.FilterDiet] = domain.JoinIDs(domain.ParseIDs(f.diets))
	}
	if flags.Changed("sort") {
		key := domain.ParseSortKey(f.sort)
		if key == domain.SortDefault && f.sort != "" {
			return "", fmt.Errorf("unknown sort %q", f.sort)
		}
		changes[domain.FilterSort] = string(key)
	}
	// A filter change goes back to the first page unless one is asked for
	if flags.Changed("page") {
		changes[domain.FilterPage] = positive(int64(f.page))
	} else if len(changes) > 0 {
		changes[domain.FilterPage] = ""
	}
	return urlstate.SetAll(rawQuery, changes), nil
}

func positive(n int64) string {
	if n <= 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func parseKindArg(arg string) (application.Kind, error) {
	kind := application.ParseKind(arg)
	if kind == application.KindUnknown {
		return kind, fmt.Errorf("unknown list %q (expected recipes, posts or favorites)", arg)
	}
	return kind, nil
}

var (
	listFilters filterFlags
	listAll     bool
	listMax     int
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list <recipes|posts|favorites> [query]",
	Short: "List recipes, posts or favorites",
	Long: `List one page of recipes, posts or favorites.

The optional query is a list page query string; flags are applied on top of it.

Examples:
  cardapio-cli list recipes
  cardapio-cli list recipes "title=bolo&sort=quickest"
  cardapio-cli list recipes --category 1 --diet 2,3
  cardapio-cli list posts --all --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		var raw string
		if len(args) == 2 {
			raw = args[1]
		}
		query, err := listFilters.apply(cmd, raw)
		if err != nil {
			return err
		}

		filters := application.ParseFilterState(query)
		if filters.PerPage() == 0 {
			filters = filters.With(domain.FilterPerPage, strconv.Itoa(GetApp().Config.PerPage))
		}
		ctx := cmd.Context()

		if listAll {
			items, err := commands.NewListAllCommand(GetBackend(), kind, filters, listMax).Execute(ctx)
			if err != nil {
				return err
			}
			return printItems(items, nil)
		}

		page, err := commands.NewListCommand(GetBackend(), kind, filters).Execute(ctx)
		if err != nil {
			return err
		}
		return printItems(page.Data, &page.Meta)
	},
}

func printItems(items []application.ListItem, meta *application.PaginationMeta) error {
	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if meta != nil {
			return enc.Encode(application.Page{Data: items, Meta: *meta})
		}
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No results found")
		return nil
	}
	for _, it := range items {
		fav := " "
		if it.IsFavorited {
			fav = "★"
		}
		fmt.Printf("%d %s %s\n", it.ID, fav, it.Title)
	}
	if meta != nil {
		fmt.Printf("page %d of %d (%d total)\n", meta.CurrentPage, meta.LastPage, meta.Total)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listFilters.register(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "follow pagination to the last page")
	listCmd.Flags().IntVar(&listMax, "max", 500, "stop --all after this many items (0 for no limit)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
}
