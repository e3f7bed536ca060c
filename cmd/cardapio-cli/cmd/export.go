package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardapio/internal/adapters/export"
	"cardapio/internal/application"
	"cardapio/internal/application/commands"
)

var (
	exportFilters filterFlags
	exportMax     int
)

var exportCmd = &cobra.Command{
	Use:   "export <recipes|posts|favorites> <file> [query]",
	Short: "Export a filtered list to a spreadsheet",
	Long: `Export every item matching the filters to an .xlsx or .csv file.

Examples:
  cardapio-cli export recipes bolos.xlsx --category 1
  cardapio-cli export favorites favoritos.csv "sort=title"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		path := args[1]
		if _, err := export.FormatFromPath(path); err != nil {
			return err
		}
		var raw string
		if len(args) == 3 {
			raw = args[2]
		}
		query, err := exportFilters.apply(cmd, raw)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		backend := GetBackend()
		tax, err := commands.NewLoadTaxonomyCommand(backend).Execute(ctx)
		if err != nil {
			return err
		}
		items, err := commands.NewListAllCommand(backend, kind, application.ParseFilterState(query), exportMax).Execute(ctx)
		if err != nil {
			return err
		}

		if err := export.WriteFile(path, items, *tax); err != nil {
			return err
		}
		fmt.Printf("Exported %d %s to %s\n", len(items), kind.Path(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFilters.register(exportCmd)
	exportCmd.Flags().IntVar(&exportMax, "max", 0, "stop after this many items (0 for no limit)")
}
