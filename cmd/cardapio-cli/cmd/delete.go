package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cardapio/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <recipes|posts> <id>",
	Short: "Delete a recipe or post",
	Long: `Delete a recipe or post by id.

Warning: This operation cannot be undone.

Examples:
  cardapio-cli delete recipes 12
  cardapio-cli delete posts 101`,
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

		deleteCmd := commands.NewDeleteCommand(GetBackend(), kind, id)
		result, err := deleteCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
