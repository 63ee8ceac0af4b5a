package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskdeck/internal/chat"
	"taskdeck/internal/config"
	taskmcp "taskdeck/internal/mcp"
	"taskdeck/internal/storage"
	"taskdeck/internal/tasks"
)

// NewMCPServeCommand returns the mcp-serve subcommand.
func NewMCPServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp-serve",
		Usage: "Expose the task tools as an MCP server (stdio)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Usage:    "User ID all tool calls are scoped to",
				Required: true,
			},
		},
		Action: runMCPServe,
	}
}

func runMCPServe(ctx context.Context, cmd *cli.Command) error {
	// Logging goes to stderr; stdout carries the MCP stdio transport.
	level := slog.LevelWarn
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Debug("config not found, using defaults", "path", configPath, "error", err)
		cfg = &config.Config{}
	}
	config.ApplyDefaults(cfg)

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	taskStore, err := tasks.NewSQLStore(db)
	if err != nil {
		return fmt.Errorf("init task store: %w", err)
	}

	userID := cmd.String("user")
	slog.Debug("starting MCP server", "user", userID)

	server := taskmcp.NewServer(chat.NewExecutor(taskStore), userID)
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
