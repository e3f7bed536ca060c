package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardapio/internal/application/commands"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and diet tags",
	Long: `List the categories and diet tags with the ids used by the
category_id and diet_ids filters.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := commands.NewLoadTaxonomyCommand(GetBackend()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Categories:")
		for _, c := range tax.Categories {
			fmt.Printf("  %d %s %s\n", c.ID, c.Icon.Glyph(), c.Name)
		}
		fmt.Println("Diet tags:")
		for _, d := range tax.DietTags {
			fmt.Printf("  %d %s\n", d.ID, d.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
