package store

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/domain"
)

// TaskStore defines the interface for task record persistence.
// Every returned task is a copy; callers cannot modify stored state through it.
type TaskStore interface {
	// List returns every task in the order its creation was accepted.
	// The slice is never nil.
	List(ctx context.Context) ([]domain.Task, error)

	// Get retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id string) (domain.Task, error)

	// Create stores a new task with a generated ID and Completed=false.
	// Returns an error wrapping domain.ErrInvalidInput for an empty or blank title.
	Create(ctx context.Context, title string) (domain.Task, error)

	// ToggleCompletion atomically flips the Completed flag of a task and
	// returns the updated record.
	// Returns ErrTaskNotFound if the task does not exist.
	ToggleCompletion(ctx context.Context, id string) (domain.Task, error)

	// Delete removes a task. It reports false when no such task existed,
	// so deleting twice yields true then false.
	Delete(ctx context.Context, id string) (bool, error)
}
