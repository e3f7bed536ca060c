package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cardapio/internal/app"
	"cardapio/internal/config"
	"cardapio/internal/logging"
	"cardapio/internal/ports"
)

var (
	cfgFile string
	v       = config.New()
	appCtx  *app.Context
)

var rootCmd = &cobra.Command{
	Use:   "cardapio-cli",
	Short: "CLI for browsing recipes and blog posts",
	Long: `cardapio-cli lists, filters and edits the recipes and blog posts of a
cardapio catalog, either the local SQLite catalog or a remote REST backend.

Filters use the same query string as the list pages, so a list shown here
can be opened in the browser or the TUI with the same URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "url" {
			return nil
		}

		if err := config.ReadFile(v, cfgFile); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		cfg, err := config.Unmarshal(v)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		log, err := logging.New(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return err
		}

		appCtx, err = app.New(cmd.Context(), cfg, log)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appCtx == nil {
			return nil
		}
		return appCtx.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", config.Path(), "config file")
	flags.String("api-url", "", "REST backend URL; empty uses the local catalog")
	flags.String("db", "", "path to the local catalog")
	flags.Int("per-page", 0, "page size for list requests")
	flags.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	bindFlag(v, "api_url", "api-url")
	bindFlag(v, "db_path", "db")
	bindFlag(v, "per_page", "per-page")
	bindFlag(v, "log_level", "log-level")
	bindFlag(v, "log_file", "log-file")
}

func bindFlag(v *viper.Viper, key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// GetApp returns the initialized application context
func GetApp() *app.Context {
	return appCtx
}

// GetBackend returns the initialized backend
func GetBackend() ports.Backend {
	return appCtx.Backend
}
