package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardapio/internal/adapters/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed [fixtures.yaml]",
	Short: "Load fixtures into the local catalog",
	Long: `Load categories, diet tags, recipes and posts into the local catalog.
Without a file the bundled demo fixtures are loaded. Existing rows with the
same ids are replaced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := GetApp().Catalog
		if catalog == nil {
			return errors.New("seed only works with the local catalog (unset api_url)")
		}

		fixtures := sqlite.DefaultFixtures()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if fixtures, err = sqlite.LoadFixtures(f); err != nil {
				return err
			}
		}

		stats, err := sqlite.Seed(catalog, fixtures)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d categories, %d diet tags, %d recipes, %d posts\n",
			stats.Categories, stats.DietTags, stats.Recipes, stats.Posts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
