package cli

import (
	"context"
	"strings"
	"testing"
)

func newConsole() *Console {
	return NewConsole(strings.NewReader(""), &strings.Builder{})
}

func TestAddAndList(t *testing.T) {
	c := newConsole()
	ctx := context.Background()

	out := c.Execute(ctx, "add buy milk - 2 liters")
	if !strings.Contains(out, "Task added successfully with ID 1: buy milk") {
		t.Fatalf("unexpected output %q", out)
	}

	out = c.Execute(ctx, "add walk the dog")
	if !strings.Contains(out, "ID 2: walk the dog") {
		t.Fatalf("unexpected output %q", out)
	}

	out = c.Execute(ctx, "list")
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "walk the dog") {
		t.Fatalf("listing missing tasks:\n%s", out)
	}
	if !strings.Contains(out, "Incomplete") {
		t.Fatalf("new tasks should show as Incomplete:\n%s", out)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	c := newConsole()
	out := c.Execute(context.Background(), "add")
	if out != "Error: Add command requires a title" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestListEmpty(t *testing.T) {
	c := newConsole()
	out := c.Execute(context.Background(), "list")
	if out != "No tasks found." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCompleteAndIncomplete(t *testing.T) {
	c := newConsole()
	ctx := context.Background()
	c.Execute(ctx, "add buy milk")

	out := c.Execute(ctx, "complete 1")
	if out != "Task 1 marked as complete" {
		t.Fatalf("unexpected output %q", out)
	}
	if listing := c.Execute(ctx, "list"); !strings.Contains(listing, "Complete") {
		t.Fatalf("task should show Complete:\n%s", listing)
	}

	// Completing an already-complete task stays complete.
	if out := c.Execute(ctx, "complete 1"); out != "Task 1 marked as complete" {
		t.Fatalf("unexpected output %q", out)
	}

	out = c.Execute(ctx, "incomplete 1")
	if out != "Task 1 marked as incomplete" {
		t.Fatalf("unexpected output %q", out)
	}
	if listing := c.Execute(ctx, "list"); !strings.Contains(listing, "Incomplete") {
		t.Fatalf("task should show Incomplete:\n%s", listing)
	}
}

func TestCompleteErrors(t *testing.T) {
	c := newConsole()
	ctx := context.Background()

	if out := c.Execute(ctx, "complete"); out != "Error: Complete command requires a task ID" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := c.Execute(ctx, "complete seven"); out != "Error: Invalid task ID. Please provide a valid number." {
		t.Fatalf("unexpected output %q", out)
	}
	if out := c.Execute(ctx, "complete 42"); out != "Error: Task with ID 42 not found" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUpdate(t *testing.T) {
	c := newConsole()
	ctx := context.Background()
	c.Execute(ctx, "add buy milk - 2 liters")

	out := c.Execute(ctx, "update 1 buy oat milk - 1 liter")
	if out != "Task 1 updated successfully" {
		t.Fatalf("unexpected output %q", out)
	}
	if listing := c.Execute(ctx, "list"); !strings.Contains(listing, "buy oat milk") {
		t.Fatalf("update not reflected:\n%s", listing)
	}

	if out := c.Execute(ctx, "update 1"); out != "Error: Update command requires a task ID and new content" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := c.Execute(ctx, "update nine title"); !strings.Contains(out, "Invalid task ID") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := c.Execute(ctx, "update 42 new title"); out != "Error: Task with ID 42 not found" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDelete(t *testing.T) {
	c := newConsole()
	ctx := context.Background()
	c.Execute(ctx, "add buy milk")

	if out := c.Execute(ctx, "delete 1"); out != "Task 1 deleted successfully" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := c.Execute(ctx, "list"); out != "No tasks found." {
		t.Fatalf("task should be gone, got %q", out)
	}
	if out := c.Execute(ctx, "delete 1"); out != "Error: Task with ID 1 not found" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	c := newConsole()
	out := c.Execute(context.Background(), "frobnicate 1")
	if !strings.Contains(out, "Unknown command: frobnicate") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestHelp(t *testing.T) {
	c := newConsole()
	out := c.Execute(context.Background(), "help")
	for _, cmd := range []string{"add", "list", "complete", "incomplete", "update", "delete", "exit"} {
		if !strings.Contains(out, cmd) {
			t.Fatalf("help missing %q:\n%s", cmd, out)
		}
	}
}

func TestRunSession(t *testing.T) {
	in := strings.NewReader("add buy milk\nlist\nexit\n")
	var out strings.Builder
	c := NewConsole(in, &out)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "Welcome to the taskdeck console!") {
		t.Fatalf("missing banner:\n%s", output)
	}
	if !strings.Contains(output, "buy milk") || !strings.Contains(output, "Goodbye!") {
		t.Fatalf("unexpected session output:\n%s", output)
	}
}
