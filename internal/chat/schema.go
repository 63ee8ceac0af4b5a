package chat

import (
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Argument schemas for each operation the model may request. The status
// argument of list_tasks is deliberately left a free string: unknown filters
// fall back to listing everything rather than failing the turn. task_id
// accepts numbers and numeric strings because models emit both.
var argSchemas = map[string]*jsonschema.Schema{
	"add_task": jsonschema.MustCompileString("add_task.json", `{
		"type": "object",
		"properties": {
			"user_id": {"type": "string"},
			"title": {"type": "string", "minLength": 1},
			"description": {"type": ["string", "null"]}
		},
		"required": ["title"]
	}`),
	"list_tasks": jsonschema.MustCompileString("list_tasks.json", `{
		"type": "object",
		"properties": {
			"user_id": {"type": "string"},
			"status": {"type": ["string", "null"]}
		}
	}`),
	"complete_task": jsonschema.MustCompileString("complete_task.json", `{
		"type": "object",
		"properties": {
			"user_id": {"type": "string"},
			"task_id": {"type": ["integer", "number", "string"]}
		},
		"required": ["task_id"]
	}`),
	"delete_task": jsonschema.MustCompileString("delete_task.json", `{
		"type": "object",
		"properties": {
			"user_id": {"type": "string"},
			"task_id": {"type": ["integer", "number", "string"]}
		},
		"required": ["task_id"]
	}`),
	"update_task": jsonschema.MustCompileString("update_task.json", `{
		"type": "object",
		"properties": {
			"user_id": {"type": "string"},
			"task_id": {"type": ["integer", "number", "string"]},
			"title": {"type": ["string", "null"]},
			"description": {"type": ["string", "null"]}
		},
		"required": ["task_id"]
	}`),
}

// KnownOperation reports whether the model asked for an operation we execute.
func KnownOperation(name string) bool {
	_, ok := argSchemas[name]
	return ok
}

// ValidateArgs checks the model-provided arguments against the operation's
// schema before anything touches the store.
func ValidateArgs(name string, args map[string]any) error {
	sch, ok := argSchemas[name]
	if !ok {
		return fmt.Errorf("unknown operation %q", name)
	}
	// Validate wants plain decoded JSON; args already is.
	var v any = args
	if args == nil {
		v = map[string]any{}
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	return nil
}
