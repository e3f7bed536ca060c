package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "cardapio/internal/adapters/mcp"
	"cardapio/internal/app"
	"cardapio/internal/config"
	"cardapio/internal/logging"
)

func main() {
	configFlag := flag.String("config", config.Path(), "config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("cardapio-mcp: %v", err)
	}

	// stdout carries the protocol; logs go to stderr or the configured file
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("cardapio-mcp: %v", err)
	}

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("cardapio-mcp: %v", err)
	}
	defer a.Close()

	mcpServer := server.NewMCPServer(
		"cardapio-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, a.Backend)
	mcpadapter.RegisterWriteTools(mcpServer, a.Backend)

	if err := server.ServeStdio(mcpServer); err != nil {
		a.Close()
		log.Fatalf("cardapio-mcp: %v", err)
	}
}
