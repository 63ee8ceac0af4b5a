package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	taskcli "taskdeck/internal/cli"
)

// NewTodoCommand returns the interactive console subcommand.
func NewTodoCommand() *cli.Command {
	return &cli.Command{
		Name:   "todo",
		Usage:  "Run the interactive in-memory todo console",
		Action: runTodo,
	}
}

func runTodo(ctx context.Context, _ *cli.Command) error {
	console := taskcli.NewConsole(os.Stdin, os.Stdout)
	return console.Run(ctx)
}
