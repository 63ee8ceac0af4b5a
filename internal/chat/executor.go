package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"taskdeck/internal/tasks"
)

// Executor carries out the task operations the model requests. The caller's
// user id always wins over whatever the model put in the arguments.
type Executor struct {
	store tasks.Store
}

// NewExecutor creates an Executor backed by the given task store.
func NewExecutor(store tasks.Store) *Executor {
	return &Executor{store: store}
}

// Execute dispatches one operation and returns its result payload.
func (e *Executor) Execute(ctx context.Context, name, userID string, args map[string]any) (any, error) {
	switch name {
	case "add_task":
		return e.addTask(ctx, userID, args)
	case "list_tasks":
		return e.listTasks(ctx, userID, args)
	case "complete_task":
		return e.completeTask(ctx, userID, args)
	case "delete_task":
		return e.deleteTask(ctx, userID, args)
	case "update_task":
		return e.updateTask(ctx, userID, args)
	default:
		return nil, fmt.Errorf("unknown operation %q", name)
	}
}

func (e *Executor) addTask(ctx context.Context, userID string, args map[string]any) (any, error) {
	title, _ := args["title"].(string)
	description, _ := args["description"].(string)

	task := &tasks.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := e.store.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	slog.Info("task added", "user", userID, "task", task.ID, "title", task.Title)
	return taskPayload(task, true), nil
}

func (e *Executor) listTasks(ctx context.Context, userID string, args map[string]any) (any, error) {
	status, _ := args["status"].(string)
	if status == "" {
		status = string(tasks.StatusAll)
	}
	switch tasks.StatusFilter(status) {
	case tasks.StatusAll, tasks.StatusPending, tasks.StatusCompleted:
	default:
		slog.Warn("unknown status filter, listing all", "user", userID, "status", status)
	}

	list, err := e.store.List(ctx, userID, tasks.StatusFilter(status))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	slog.Info("tasks listed", "user", userID, "status", status, "count", len(list))

	payload := make([]map[string]any, 0, len(list))
	for _, task := range list {
		p := taskPayload(task, true)
		p["updated_at"] = task.UpdatedAt.Format(time.RFC3339)
		payload = append(payload, p)
	}
	return payload, nil
}

func (e *Executor) completeTask(ctx context.Context, userID string, args map[string]any) (any, error) {
	taskID, err := coerceTaskID(args["task_id"])
	if err != nil {
		return nil, err
	}

	completed := true
	task, err := e.store.Update(ctx, userID, taskID, tasks.Patch{Completed: &completed})
	if err != nil {
		return nil, fmt.Errorf("complete task %d: %w", taskID, err)
	}
	slog.Info("task completed", "user", userID, "task", taskID)

	p := taskPayload(task, false)
	p["updated_at"] = task.UpdatedAt.Format(time.RFC3339)
	return p, nil
}

func (e *Executor) deleteTask(ctx context.Context, userID string, args map[string]any) (any, error) {
	taskID, err := coerceTaskID(args["task_id"])
	if err != nil {
		return nil, err
	}

	// Fetch first so the confirmation can echo the title.
	task, err := e.store.Get(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("delete task %d: %w", taskID, err)
	}
	if err := e.store.Delete(ctx, userID, taskID); err != nil {
		return nil, fmt.Errorf("delete task %d: %w", taskID, err)
	}
	slog.Info("task deleted", "user", userID, "task", taskID)

	return map[string]any{
		"id":      task.ID,
		"title":   task.Title,
		"deleted": true,
	}, nil
}

func (e *Executor) updateTask(ctx context.Context, userID string, args map[string]any) (any, error) {
	taskID, err := coerceTaskID(args["task_id"])
	if err != nil {
		return nil, err
	}

	var patch tasks.Patch
	if title, ok := args["title"].(string); ok {
		patch.Title = &title
	}
	if description, ok := args["description"].(string); ok {
		patch.Description = &description
	}

	task, err := e.store.Update(ctx, userID, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", taskID, err)
	}
	slog.Info("task updated", "user", userID, "task", taskID)

	p := taskPayload(task, false)
	p["updated_at"] = task.UpdatedAt.Format(time.RFC3339)
	return p, nil
}

// coerceTaskID accepts the shapes models emit for numeric ids: JSON numbers
// decode as float64, and some models quote them as strings.
func coerceTaskID(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("task_id %q is not a number", n)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("task_id missing or not a number")
	}
}

func taskPayload(t *tasks.Task, withCreated bool) map[string]any {
	p := map[string]any{
		"id":           t.ID,
		"title":        t.Title,
		"description":  t.Description,
		"is_completed": t.Completed,
		"user_id":      t.UserID,
	}
	if withCreated {
		p["created_at"] = t.CreatedAt.Format(time.RFC3339)
	}
	return p
}
