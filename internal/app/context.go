// Package app wires configuration, logging and the backend together once
// at startup and hands the result to every front end.
package app

import (
	"context"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"

	"cardapio/internal/adapters/restapi"
	"cardapio/internal/adapters/sqlite"
	"cardapio/internal/config"
	"cardapio/internal/ports"
)

// Context is the explicit application context. It replaces process-wide
// state: whoever needs the backend or the logger receives it from here.
type Context struct {
	Config  *config.Config
	Logger  *zap.Logger
	Backend ports.Backend

	// Catalog is set when the backend is the local store
	Catalog *sqlite.Catalog
}

// New builds the context for cfg. Without an API URL the local catalog is
// opened, and seeded with the bundled fixtures when it is empty.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Context, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Context{Config: cfg, Logger: log}

	if cfg.Remote() {
		client, err := restapi.NewClient(cfg.APIURL, cfg.APIToken,
			restapi.WithLogger(log.Named("restapi")),
			restapi.WithRetry(uint(max(1, cfg.Retries)), restapi.DefaultRetryDelay),
			restapi.WithTimeout(cfg.Timeout),
		)
		if err != nil {
			return nil, err
		}
		c.Backend = client
		log.Debug("using remote backend", zap.String("url", cfg.APIURL))
		return c, nil
	}

	catalog := sqlite.NewCatalog()
	if err := catalog.Open(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	categories, err := catalog.ListCategories(ctx)
	if err != nil {
		catalog.Close()
		return nil, err
	}
	if len(categories) == 0 {
		stats, err := sqlite.Seed(catalog, sqlite.DefaultFixtures())
		if err != nil {
			catalog.Close()
			return nil, err
		}
		log.Info("seeded empty catalog", zap.Int("recipes", stats.Recipes), zap.Int("posts", stats.Posts))
	}
	c.Catalog = catalog
	c.Backend = catalog
	log.Debug("using local catalog", zap.String("path", cfg.DBPath))
	return c, nil
}

// ShareURL turns an in-app target ("/recipes?title=bolo") into an absolute
// URL on the server that renders list pages
func (c *Context) ShareURL(target string) string {
	base := c.Config.APIURL
	if base == "" {
		listen := c.Config.Listen
		if host, port, err := net.SplitHostPort(listen); err == nil && host == "" {
			listen = net.JoinHostPort("localhost", port)
		}
		base = "http://" + listen
	}
	return strings.TrimRight(base, "/") + target
}

// Close releases the backend and flushes the logger
func (c *Context) Close() error {
	_ = c.Logger.Sync()
	if c.Catalog != nil {
		return c.Catalog.Close()
	}
	return nil
}
