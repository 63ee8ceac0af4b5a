// Package tasks defines the task record and its persistence contract.
package tasks

import (
	"errors"
	"strings"
	"time"
)

const (
	// MaxTitleLen is the longest accepted task title.
	MaxTitleLen = 200
	// MaxDescriptionLen is the longest accepted task description.
	MaxDescriptionLen = 1000
)

var (
	// ErrNotFound is returned when a task does not exist under the given
	// owner. Cross-user access reports the same error as absence.
	ErrNotFound = errors.New("task not found")

	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("task description cannot exceed 1000 characters")
)

// Task is a single todo item owned by exactly one user.
type Task struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks title and description against the boundary limits.
func Validate(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if len(description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// StatusFilter narrows a task listing by completion flag.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// Matches reports whether a completion flag passes the filter.
// Unrecognized filter values behave as "all".
func (f StatusFilter) Matches(completed bool) bool {
	switch f {
	case StatusPending:
		return !completed
	case StatusCompleted:
		return completed
	default:
		return true
	}
}

// Patch describes a partial task update. Nil fields keep their prior value.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply copies the non-nil patch fields onto t.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

// Validate checks the patched values against the boundary limits.
func (p Patch) Validate() error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return ErrEmptyTitle
		}
		if len(*p.Title) > MaxTitleLen {
			return ErrTitleTooLong
		}
	}
	if p.Description != nil && len(*p.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}
