package mcp

import (
	"testing"

	"taskdeck/internal/chat"
	"taskdeck/internal/tasks"
)

func TestToolSpecsCoverOperations(t *testing.T) {
	want := map[string]bool{
		"add_task":      false,
		"list_tasks":    false,
		"complete_task": false,
		"delete_task":   false,
		"update_task":   false,
	}
	for _, spec := range toolSpecs {
		if _, ok := want[spec.name]; !ok {
			t.Errorf("unexpected tool %q", spec.name)
			continue
		}
		want[spec.name] = true

		schema, ok := spec.inputSchema["type"]
		if !ok || schema != "object" {
			t.Errorf("%s: input schema type = %v, want object", spec.name, schema)
		}
		if spec.description == "" {
			t.Errorf("%s: missing description", spec.name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %q not exposed", name)
		}
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	executor := chat.NewExecutor(tasks.NewMemStore())
	server := NewServer(executor, "user_test")
	if server == nil {
		t.Fatal("expected a server")
	}
}
