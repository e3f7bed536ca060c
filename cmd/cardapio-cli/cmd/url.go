package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardapio/internal/urlstate"
)

var urlFilters filterFlags

var urlCmd = &cobra.Command{
	Use:   "url <recipes|posts|favorites> [query]",
	Short: "Print the list page URL for a set of filters",
	Long: `Print the path of a list page with the given filters applied, the
same way the list pages rewrite their own URL. Nothing is fetched.

Examples:
  cardapio-cli url recipes --title bolo --diet 1,3
  cardapio-cli url recipes "category_id=2&page=3" --category 4`,
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
		query, err := urlFilters.apply(cmd, raw)
		if err != nil {
			return err
		}
		fmt.Println(urlstate.Target("/"+kind.Path(), query))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
	urlFilters.register(urlCmd)
}
