package tasks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-memory Store with auto-incrementing IDs.
// It backs the standalone CLI application and tests.
// All methods are safe for concurrent use.
type MemStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*Task
	nextID int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		tasks:  make(map[int64]*Task),
		nextID: 1,
	}
}

// Create validates and stores a new task, assigning its ID.
func (s *MemStore) Create(_ context.Context, t *Task) error {
	if err := Validate(t.Title, t.Description); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t.Title = strings.TrimSpace(t.Title)
	t.ID = s.nextID
	t.CreatedAt = now
	t.UpdatedAt = now
	s.nextID++

	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

// Get returns the task if it exists under the given owner.
func (s *MemStore) Get(_ context.Context, userID string, id int64) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// List returns the owner's tasks matching the filter, ordered by ID.
func (s *MemStore) List(_ context.Context, userID string, filter StatusFilter) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Task
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if !filter.Matches(t.Completed) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update applies a partial patch to the owner's task.
func (s *MemStore) Update(_ context.Context, userID string, id int64, patch Patch) (*Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}

	patch.Apply(t)
	t.UpdatedAt = time.Now()

	cp := *t
	return &cp, nil
}

// Delete removes the owner's task.
func (s *MemStore) Delete(_ context.Context, userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
