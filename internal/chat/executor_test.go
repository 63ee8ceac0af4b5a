package chat

import (
	"context"
	"errors"
	"testing"

	"taskdeck/internal/tasks"
)

func seedTask(t *testing.T, store tasks.Store, userID, title string) *tasks.Task {
	t.Helper()
	task := &tasks.Task{UserID: userID, Title: title}
	if err := store.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestExecuteAddTask(t *testing.T) {
	store := tasks.NewMemStore()
	exec := NewExecutor(store)

	result, err := exec.Execute(context.Background(), "add_task", "user_a", map[string]any{
		"title":       "buy milk",
		"description": "2 liters",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	payload, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload type %T", result)
	}
	if payload["title"] != "buy milk" || payload["user_id"] != "user_a" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["is_completed"] != false {
		t.Fatalf("new task should be pending: %v", payload)
	}

	list, err := store.List(context.Background(), "user_a", tasks.StatusAll)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 task in store, got %d", len(list))
	}
}

func TestExecuteListTasksFilter(t *testing.T) {
	store := tasks.NewMemStore()
	exec := NewExecutor(store)
	ctx := context.Background()

	seedTask(t, store, "user_a", "pending one")
	done := seedTask(t, store, "user_a", "done one")
	completed := true
	if _, err := store.Update(ctx, "user_a", done.ID, tasks.Patch{Completed: &completed}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	result, err := exec.Execute(ctx, "list_tasks", "user_a", map[string]any{"status": "pending"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	list, ok := result.([]map[string]any)
	if !ok {
		t.Fatalf("unexpected payload type %T", result)
	}
	if len(list) != 1 || list[0]["title"] != "pending one" {
		t.Fatalf("unexpected listing: %v", list)
	}

	// Unknown status falls back to everything.
	result, err = exec.Execute(ctx, "list_tasks", "user_a", map[string]any{"status": "urgent"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if list := result.([]map[string]any); len(list) != 2 {
		t.Fatalf("expected 2 tasks for unknown status, got %d", len(list))
	}
}

func TestExecuteCompleteTask(t *testing.T) {
	store := tasks.NewMemStore()
	exec := NewExecutor(store)
	ctx := context.Background()

	task := seedTask(t, store, "user_a", "buy milk")

	// task_id arrives as float64 from JSON decoding.
	result, err := exec.Execute(ctx, "complete_task", "user_a", map[string]any{
		"task_id": float64(task.ID),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	payload := result.(map[string]any)
	if payload["is_completed"] != true {
		t.Fatalf("expected completed task, got %v", payload)
	}

	// Completing again is idempotent.
	if _, err := exec.Execute(ctx, "complete_task", "user_a", map[string]any{
		"task_id": float64(task.ID),
	}); err != nil {
		t.Fatalf("second complete: %v", err)
	}
}

func TestExecuteDeleteTask(t *testing.T) {
	store := tasks.NewMemStore()
	exec := NewExecutor(store)
	ctx := context.Background()

	task := seedTask(t, store, "user_a", "buy milk")

	result, err := exec.Execute(ctx, "delete_task", "user_a", map[string]any{
		"task_id": float64(task.ID),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	payload := result.(map[string]any)
	if payload["deleted"] != true || payload["title"] != "buy milk" {
		t.Fatalf("unexpected payload: %v", payload)
	}

	if _, err := store.Get(ctx, "user_a", task.ID); !errors.Is(err, tasks.ErrNotFound) {
		t.Fatalf("task should be gone, got %v", err)
	}
}

func TestExecuteUpdateTaskPartial(t *testing.T) {
	store := tasks.NewMemStore()
	exec := NewExecutor(store)
	ctx := context.Background()

	task := seedTask(t, store, "user_a", "buy milk")

	// String task_id, title only: description must survive.
	result, err := exec.Execute(ctx, "update_task", "user_a", map[string]any{
		"task_id": "1",
		"title":   "buy oat milk",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	payload := result.(map[string]any)
	if payload["title"] != "buy oat milk" {
		t.Fatalf("unexpected payload: %v", payload)
	}

	got, err := store.Get(ctx, "user_a", task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "buy oat milk" {
		t.Fatalf("store not updated: %+v", got)
	}
}

func TestExecuteOwnerScoping(t *testing.T) {
	store := tasks.NewMemStore()
	exec := NewExecutor(store)
	ctx := context.Background()

	victim := seedTask(t, store, "user_a", "private task")

	ops := []struct {
		name string
		args map[string]any
	}{
		{"complete_task", map[string]any{"task_id": float64(victim.ID)}},
		{"delete_task", map[string]any{"task_id": float64(victim.ID)}},
		{"update_task", map[string]any{"task_id": float64(victim.ID), "title": "stolen"}},
	}
	for _, op := range ops {
		_, err := exec.Execute(ctx, op.name, "user_b", op.args)
		if !errors.Is(err, tasks.ErrNotFound) {
			t.Fatalf("%s as wrong user: expected ErrNotFound, got %v", op.name, err)
		}
	}

	// The victim's task is untouched.
	got, err := store.Get(ctx, "user_a", victim.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "private task" || got.Completed {
		t.Fatalf("victim task was modified: %+v", got)
	}
}

func TestCoerceTaskID(t *testing.T) {
	cases := []struct {
		in      any
		want    int64
		wantErr bool
	}{
		{float64(7), 7, false},
		{"12", 12, false},
		{int64(3), 3, false},
		{"twelve", 0, true},
		{nil, 0, true},
	}
	for _, tc := range cases {
		got, err := coerceTaskID(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("coerceTaskID(%v): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("coerceTaskID(%v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("coerceTaskID(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
