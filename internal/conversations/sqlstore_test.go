package conversations

import (
	"context"
	"path/filepath"
	"testing"

	"taskdeck/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestGetOrCreateFresh(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, err := store.GetOrCreate(ctx, "user_a", nil)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if conv.ID == 0 || conv.UserID != "user_a" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}

	again, err := store.GetOrCreate(ctx, "user_a", &conv.ID)
	if err != nil {
		t.Fatalf("GetOrCreate existing: %v", err)
	}
	if again.ID != conv.ID {
		t.Fatalf("expected same conversation %d, got %d", conv.ID, again.ID)
	}
}

func TestGetOrCreateWrongOwnerMakesNew(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, err := store.GetOrCreate(ctx, "user_a", nil)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	other, err := store.GetOrCreate(ctx, "user_b", &conv.ID)
	if err != nil {
		t.Fatalf("GetOrCreate other owner: %v", err)
	}
	if other.ID == conv.ID {
		t.Fatal("expected a fresh conversation for the other user")
	}
	if other.UserID != "user_b" {
		t.Fatalf("unexpected owner %q", other.UserID)
	}
}

func TestHistoryOrderAndScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, err := store.GetOrCreate(ctx, "user_a", nil)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	turns := []struct{ role, content string }{
		{RoleUser, "add buy milk"},
		{RoleAssistant, "Added task: buy milk"},
		{RoleUser, "list my tasks"},
	}
	for _, turn := range turns {
		if _, err := store.AppendMessage(ctx, conv.ID, "user_a", turn.role, turn.content); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	history, err := store.History(ctx, conv.ID, "user_a", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	for i, turn := range turns {
		if history[i].Role != turn.role || history[i].Content != turn.content {
			t.Fatalf("message %d: got %s %q", i, history[i].Role, history[i].Content)
		}
	}

	// Someone else sees nothing.
	other, err := store.History(ctx, conv.ID, "user_b", 10)
	if err != nil {
		t.Fatalf("History other owner: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(other))
	}
}

func TestHistoryLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, err := store.GetOrCreate(ctx, "user_a", nil)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.AppendMessage(ctx, conv.ID, "user_a", RoleUser, "msg"); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}
	history, err := store.History(ctx, conv.ID, "user_a", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
}
