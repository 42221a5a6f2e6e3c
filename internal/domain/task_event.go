package domain

import "time"

// TaskEventType names a change to the task registry.
type TaskEventType string

// Task lifecycle events.
const (
	TaskCreated TaskEventType = "task.created"
	TaskToggled TaskEventType = "task.toggled"
	TaskDeleted TaskEventType = "task.deleted"
)

// TaskEvent records one accepted mutation of the task registry.
// Task is nil for deletions, where only the ID is known.
type TaskEvent struct {
	Type       TaskEventType `json:"type"`
	TaskID     string        `json:"task_id"`
	Task       *Task         `json:"task,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewTaskEvent builds an event for task t.
func NewTaskEvent(eventType TaskEventType, t Task, now time.Time) TaskEvent {
	return TaskEvent{Type: eventType, TaskID: t.ID, Task: &t, OccurredAt: now.UTC()}
}

// NewTaskDeletedEvent builds the event emitted when id is removed.
func NewTaskDeletedEvent(id string, now time.Time) TaskEvent {
	return TaskEvent{Type: TaskDeleted, TaskID: id, OccurredAt: now.UTC()}
}
