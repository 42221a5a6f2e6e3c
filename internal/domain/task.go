package domain

import (
	"strings"
	"time"
)

// Task is a single unit of work tracked by the task registry.
// ID, Title and CreatedAt never change after creation; Completed is flipped
// by the toggle operation.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateTaskTitle reports whether title is acceptable for a new task.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return nil
}

// Toggled returns a copy of t with Completed flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}
