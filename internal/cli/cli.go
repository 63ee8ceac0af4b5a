// Package cli implements the interactive in-memory todo console.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"taskdeck/internal/tasks"
)

// localUser owns every task in a console session; the console is
// single-user and keeps nothing on disk.
const localUser = "local"

const helpText = `Available commands:
  add <title> - <description>              : Add a new task
  list                                     : List all tasks
  complete <task_id>                       : Mark task as complete
  incomplete <task_id>                     : Mark task as incomplete
  update <task_id> <title> - <description> : Update a task
  delete <task_id>                         : Delete a task
  help                                     : Show this help message
  exit or quit                             : Exit the application`

// Console is the interactive todo shell.
type Console struct {
	store tasks.Store
	in    io.Reader
	out   io.Writer
}

// NewConsole creates a console over its own in-memory store.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		store: tasks.NewMemStore(),
		in:    in,
		out:   out,
	}
}

// Run reads commands until exit, EOF, or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Welcome to the taskdeck console!")
	fmt.Fprintln(c.out, "Type 'help' for available commands or 'exit' to quit.")

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "\ntodo> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out, "\nGoodbye!")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			fmt.Fprintln(c.out, "\nGoodbye!")
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if cmd := strings.ToLower(line); cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		}

		fmt.Fprintln(c.out, c.Execute(ctx, line))
	}
}

// Execute runs one command line and returns the user-facing result.
func (c *Console) Execute(ctx context.Context, line string) string {
	command, args := parseCommand(line)

	switch command {
	case "add":
		return c.addCommand(ctx, args)
	case "list":
		return c.listCommand(ctx)
	case "complete":
		return c.setCompletionCommand(ctx, args, true)
	case "incomplete":
		return c.setCompletionCommand(ctx, args, false)
	case "update":
		return c.updateCommand(ctx, args)
	case "delete":
		return c.deleteCommand(ctx, args)
	case "help":
		return helpText
	default:
		return fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", command)
	}
}

func (c *Console) addCommand(ctx context.Context, args string) string {
	title, description := splitTitleDescription(args)
	if title == "" {
		return "Error: Add command requires a title"
	}

	task := &tasks.Task{UserID: localUser, Title: title, Description: description}
	if err := c.store.Create(ctx, task); err != nil {
		return fmt.Sprintf("Error adding task: %v", err)
	}
	return fmt.Sprintf("Task added successfully with ID %d: %s", task.ID, task.Title)
}

func (c *Console) listCommand(ctx context.Context) string {
	list, err := c.store.List(ctx, localUser, tasks.StatusAll)
	if err != nil {
		return fmt.Sprintf("Error listing tasks: %v", err)
	}
	if len(list) == 0 {
		return "No tasks found."
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 1, ' ', 0)
	fmt.Fprintln(w, "ID\t| Status\t| Title")
	fmt.Fprintln(w, "--\t| ------\t| -----")
	for _, task := range list {
		status := "Incomplete"
		if task.Completed {
			status = "Complete"
		}
		fmt.Fprintf(w, "%d\t| %s\t| %s\n", task.ID, status, task.Title)
	}
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

func (c *Console) setCompletionCommand(ctx context.Context, args string, completed bool) string {
	verb, label := "complete", "Complete"
	if !completed {
		verb, label = "incomplete", "Incomplete"
	}
	if strings.TrimSpace(args) == "" {
		return fmt.Sprintf("Error: %s command requires a task ID", label)
	}

	taskID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "Error: Invalid task ID. Please provide a valid number."
	}

	if _, err := c.store.Update(ctx, localUser, taskID, tasks.Patch{Completed: &completed}); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return fmt.Sprintf("Error: Task with ID %d not found", taskID)
		}
		return fmt.Sprintf("Error updating task: %v", err)
	}
	return fmt.Sprintf("Task %d marked as %s", taskID, verb)
}

func (c *Console) updateCommand(ctx context.Context, args string) string {
	idPart, rest, found := strings.Cut(strings.TrimSpace(args), " ")
	if !found || strings.TrimSpace(rest) == "" {
		return "Error: Update command requires a task ID and new content"
	}

	taskID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return "Error: Invalid task ID or command format. Use: update <id> <title> - <description>"
	}

	title, description := splitTitleDescription(rest)
	patch := tasks.Patch{Title: &title}
	if description != "" {
		patch.Description = &description
	}

	if _, err := c.store.Update(ctx, localUser, taskID, patch); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return fmt.Sprintf("Error: Task with ID %d not found", taskID)
		}
		return fmt.Sprintf("Error updating task: %v", err)
	}
	return fmt.Sprintf("Task %d updated successfully", taskID)
}

func (c *Console) deleteCommand(ctx context.Context, args string) string {
	if strings.TrimSpace(args) == "" {
		return "Error: Delete command requires a task ID"
	}

	taskID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "Error: Invalid task ID. Please provide a valid number."
	}

	if err := c.store.Delete(ctx, localUser, taskID); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return fmt.Sprintf("Error: Task with ID %d not found", taskID)
		}
		return fmt.Sprintf("Error deleting task: %v", err)
	}
	return fmt.Sprintf("Task %d deleted successfully", taskID)
}

// parseCommand splits a line into the command word and its arguments.
func parseCommand(line string) (string, string) {
	command, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(command), strings.TrimSpace(args)
}

// splitTitleDescription splits "title - description" on the first separator.
func splitTitleDescription(s string) (string, string) {
	title, description, found := strings.Cut(s, " - ")
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(description)
}
