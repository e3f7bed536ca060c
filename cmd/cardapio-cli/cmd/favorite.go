package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cardapio/internal/application/commands"
)

var unfavorite bool

var favoriteCmd = &cobra.Command{
	Use:   "favorite <recipes|posts> <id>",
	Short: "Mark an item as favorite",
	Long: `Mark a recipe or post as favorite, or unmark it with --remove.

Examples:
  cardapio-cli favorite recipes 12
  cardapio-cli favorite recipes 12 --remove`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}

		favCmd := commands.NewSetFavoriteCommand(GetBackend(), kind, id, !unfavorite)
		result, err := favCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.Flags().BoolVar(&unfavorite, "remove", false, "remove from favorites")
}
