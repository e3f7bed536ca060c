package cmd

import (
	"github.com/spf13/cobra"

	"cardapio/internal/adapters/web"
)

var serveToken string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the list pages and the JSON API",
	Long: `Serve the recipe, post and favorite list pages over HTTP, together
with the JSON API they are built on. The listen address comes from the
listen config key or --listen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		srv := web.NewServer(a.Backend,
			web.WithLogger(a.Logger.Named("web")),
			web.WithPerPage(a.Config.PerPage),
			web.WithToken(serveToken),
		)
		return srv.Run(cmd.Context(), a.Config.Listen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "address to listen on")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "require this bearer token on /api")
	if err := v.BindPFlag("listen", serveCmd.Flags().Lookup("listen")); err != nil {
		panic(err)
	}
}
