// Package mcp exposes the task operations as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskdeck/internal/chat"
)

// toolSpec mirrors the argument contract of one task operation.
type toolSpec struct {
	name        string
	description string
	inputSchema map[string]any
}

var toolSpecs = []toolSpec{
	{
		name:        "add_task",
		description: "Add a new task to the user's todo list.",
		inputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":       map[string]any{"type": "string", "description": "Title of the task"},
				"description": map[string]any{"type": "string", "description": "Optional task description"},
			},
			"required": []string{"title"},
		},
	},
	{
		name:        "list_tasks",
		description: "List the user's tasks, optionally filtered by status.",
		inputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status": map[string]any{
					"type":        "string",
					"description": "Filter: all, pending or completed",
					"enum":        []string{"all", "pending", "completed"},
					"default":     "all",
				},
			},
		},
	},
	{
		name:        "complete_task",
		description: "Mark a task as completed.",
		inputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"task_id": map[string]any{"type": "integer", "description": "ID of the task"},
			},
			"required": []string{"task_id"},
		},
	},
	{
		name:        "delete_task",
		description: "Delete a task from the user's list.",
		inputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"task_id": map[string]any{"type": "integer", "description": "ID of the task"},
			},
			"required": []string{"task_id"},
		},
	},
	{
		name:        "update_task",
		description: "Update a task's title or description.",
		inputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"task_id":     map[string]any{"type": "integer", "description": "ID of the task"},
				"title":       map[string]any{"type": "string", "description": "New title"},
				"description": map[string]any{"type": "string", "description": "New description"},
			},
			"required": []string{"task_id"},
		},
	},
}

// NewServer creates an MCP server exposing the task tools. Every call is
// scoped to userID; arguments cannot reach another user's tasks.
func NewServer(executor *chat.Executor, userID string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "taskdeck",
		Version: "0.1.0",
	}, nil)

	for _, spec := range toolSpecs {
		toolName := spec.name

		server.AddTool(&mcpsdk.Tool{
			Name:        spec.name,
			Description: spec.description,
			InputSchema: spec.inputSchema,
		}, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
			args := map[string]any{}
			if len(req.Params.Arguments) > 0 {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					return errorResult("invalid arguments: " + err.Error()), nil
				}
			}

			result, err := executor.Execute(ctx, toolName, userID, args)
			if err != nil {
				slog.Debug("mcp tool error", "tool", toolName, "error", err)
				return errorResult(err.Error()), nil
			}

			payload, err := json.Marshal(result)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			return &mcpsdk.CallToolResult{
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(payload)}},
			}, nil
		})

		slog.Debug("mcp tool registered", "tool", toolName)
	}

	return server
}

func errorResult(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
	}
}
