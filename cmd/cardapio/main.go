package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cardapio/internal/adapters/browser"
	"cardapio/internal/adapters/tui"
	"cardapio/internal/adapters/tui/views"
	"cardapio/internal/app"
	"cardapio/internal/config"
	"cardapio/internal/domain"
	"cardapio/internal/listing"
	"cardapio/internal/logging"
)

func main() {
	listFlag := flag.String("list", "recipes", "list to open: recipes, posts or favorites")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cardapio [-list recipes] [query | /recipes?query]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*listFlag, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseTarget accepts a bare query string or a shared link such as
// "/recipes?title=bolo" or "http://localhost:8080/posts?sort=title"
func parseTarget(listName, arg string) (domain.Kind, string, error) {
	kind := domain.ParseKind(listName)
	query := arg
	if strings.Contains(arg, "/") {
		u, err := url.Parse(arg)
		if err != nil {
			return kind, "", fmt.Errorf("invalid link %q: %w", arg, err)
		}
		if p := strings.Trim(u.Path, "/"); p != "" {
			kind = domain.ParseKind(p)
		}
		query = u.RawQuery
	}
	if kind == domain.KindUnknown {
		return kind, "", fmt.Errorf("unknown list %q (expected recipes, posts or favorites)", listName)
	}
	return kind, query, nil
}

func run(listName, arg string) error {
	kind, query, err := parseTarget(listName, arg)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the TUI, so logs always go to a file
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = config.LogPath()
	}
	log, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := views.ListOptions{
		PerPage:  cfg.PerPage,
		Debounce: cfg.Debounce,
		ShareURL: a.ShareURL,
		Open:     browser.NewOpener().Open,
	}

	// Fetch the first page before the screen opens; on failure the view
	// fetches again itself and shows the error there
	filters := domain.ParseFilterState(query)
	if filters.PerPage() == 0 {
		filters = filters.With(domain.FilterPerPage, strconv.Itoa(cfg.PerPage))
	}
	if res := listing.Fetch(ctx, a.Backend, kind, filters); res.Err != nil {
		log.Warn("initial fetch failed", zap.String("list", kind.Path()), zap.Error(res.Err))
	} else {
		opts.Initial = res.Page
	}

	p := tea.NewProgram(tui.NewApp(a.Backend, kind, query, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
