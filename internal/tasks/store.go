package tasks

import "context"

// Store defines the persistence interface for tasks. Every method is scoped
// by the owning user: a task belonging to another user is indistinguishable
// from a missing one.
type Store interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, userID string, id int64) (*Task, error)
	List(ctx context.Context, userID string, filter StatusFilter) ([]*Task, error)
	Update(ctx context.Context, userID string, id int64, patch Patch) (*Task, error)
	Delete(ctx context.Context, userID string, id int64) error
}
