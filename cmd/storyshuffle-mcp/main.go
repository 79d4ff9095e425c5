package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "storyshuffle/internal/adapters/mcp"
	"storyshuffle/internal/adapters/sqlite"
	"storyshuffle/internal/buildinfo"
	"storyshuffle/internal/config"
	"storyshuffle/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default .storyshuffle.toml)")
	dataDirFlag := flag.String("data-dir", "", "directory holding the project database")
	flag.Parse()

	// stdout carries the protocol
	logger := logging.New(os.Stderr, logging.Level(false))

	if err := config.Init(*cfgFile); err != nil {
		logger.Fatal("storyshuffle-mcp", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("storyshuffle-mcp", "err", err)
	}
	if *dataDirFlag != "" {
		cfg.DataDir = config.ExpandHome(*dataDirFlag)
	}
	logger.SetLevel(logging.Level(cfg.Verbose))

	store, err := sqlite.Open(cfg.DatabasePath())
	if err != nil {
		logger.Fatal("storyshuffle-mcp", "err", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"storyshuffle-mcp",
		buildinfo.Short(),
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

	mcpadapter.RegisterManuscriptTools(mcpServer, cfg.DefaultDelimiter())
	mcpadapter.RegisterProjectTools(mcpServer, store)

	logger.Debug("serving on stdio", "database", cfg.DatabasePath())
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("storyshuffle-mcp", "err", err)
		store.Close()
		os.Exit(1)
	}
}
