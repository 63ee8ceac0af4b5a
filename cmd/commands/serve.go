package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"taskdeck/internal/auth"
	"taskdeck/internal/chat"
	"taskdeck/internal/config"
	"taskdeck/internal/conversations"
	"taskdeck/internal/models"
	"taskdeck/internal/server"
	"taskdeck/internal/storage"
	"taskdeck/internal/tasks"
	"taskdeck/internal/users"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the taskdeck HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Warn("config not found, using defaults", "path", configPath, "error", err)
		cfg = &config.Config{}
	}
	config.ApplyDefaults(cfg)

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = int(cmd.Int("port"))
	}

	secret := config.ResolveEnvRef(cfg.Auth.Secret)
	if secret == "" {
		secret = os.Getenv("TASKDECK_AUTH_SECRET")
	}
	if secret == "" {
		return fmt.Errorf("auth secret not configured: set auth.secret or TASKDECK_AUTH_SECRET")
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	taskStore, err := tasks.NewSQLStore(db)
	if err != nil {
		return fmt.Errorf("init task store: %w", err)
	}
	userStore, err := users.NewStore(db)
	if err != nil {
		return fmt.Errorf("init user store: %w", err)
	}
	convStore, err := conversations.NewStore(db)
	if err != nil {
		return fmt.Errorf("init conversation store: %w", err)
	}

	chatModel, err := models.CreateModel(ctx, cfg.Model)
	if err != nil {
		return fmt.Errorf("init chat model: %w", err)
	}

	srv := server.NewServer(server.Deps{
		Users:         users.NewService(userStore),
		Minter:        auth.NewMinter([]byte(secret), cfg.Auth.TokenTTL.Duration()),
		Tasks:         taskStore,
		Conversations: convStore,
		Interpreter:   chat.NewInterpreter(chatModel, chat.NewExecutor(taskStore)),
		Formatter:     chat.NewFormatter(taskStore),
	}, cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
