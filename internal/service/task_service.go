package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// TaskService provides the task use cases.
type TaskService interface {
	// ListTasks returns every task in creation order.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// GetTask returns one task or ErrTaskNotFound.
	GetTask(ctx context.Context, id string) (domain.Task, error)

	// CreateTask stores a new task. Blank titles yield an error wrapping
	// domain.ErrInvalidInput.
	CreateTask(ctx context.Context, title string) (domain.Task, error)

	// ToggleTask flips the completion flag of a task or returns ErrTaskNotFound.
	ToggleTask(ctx context.Context, id string) (domain.Task, error)

	// DeleteTask removes a task or returns ErrTaskNotFound when absent.
	DeleteTask(ctx context.Context, id string) error
}

// TaskEventPublisher receives an event for every accepted task mutation.
type TaskEventPublisher interface {
	Publish(ctx context.Context, event domain.TaskEvent) error
}

// TaskServiceOption configures optional task service collaborators.
type TaskServiceOption func(*taskServiceImpl)

// WithEventPublisher makes the service publish task lifecycle events.
// Publishing failures are logged and never fail the request.
func WithEventPublisher(p TaskEventPublisher) TaskServiceOption {
	return func(s *taskServiceImpl) {
		s.events = p
	}
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	events TaskEventPublisher
	now    func() time.Time
	logger *slog.Logger
}

// NewTaskService creates a TaskService backed by tasks.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger, opts ...TaskServiceOption) (TaskService, error) {
	if tasks == nil {
		return nil, &ServiceError{Service: "task", Operation: "create_service", Message: "task store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &taskServiceImpl{
		tasks:  tasks,
		now:    time.Now,
		logger: logger.With(slog.String("component", "task_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		s.logError(ctx, "list", "", err)
		return nil, wrapError("task", "list", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		s.logError(ctx, "get", id, err)
		return domain.Task{}, wrapError("task", "get", "failed to get task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, title string) (domain.Task, error) {
	task, err := s.tasks.Create(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return domain.Task{}, err
		}
		s.logError(ctx, "create", "", err)
		return domain.Task{}, wrapError("task", "create", "failed to create task", err)
	}

	s.logger.InfoContext(ctx, "task created", slog.String("task_id", task.ID))
	s.publish(ctx, domain.NewTaskEvent(domain.TaskCreated, task, s.now()))
	return task, nil
}

func (s *taskServiceImpl) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.tasks.ToggleCompletion(ctx, id)
	if err != nil {
		s.logError(ctx, "toggle", id, err)
		return domain.Task{}, wrapError("task", "toggle", "failed to toggle task", err)
	}
	s.publish(ctx, domain.NewTaskEvent(domain.TaskToggled, task, s.now()))
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	removed, err := s.tasks.Delete(ctx, id)
	if err != nil {
		s.logError(ctx, "delete", id, err)
		return wrapError("task", "delete", "failed to delete task", err)
	}
	if !removed {
		return ErrTaskNotFound
	}

	s.logger.InfoContext(ctx, "task deleted", slog.String("task_id", id))
	s.publish(ctx, domain.NewTaskDeletedEvent(id, s.now()))
	return nil
}

func (s *taskServiceImpl) publish(ctx context.Context, event domain.TaskEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish task event",
			slog.String("event_type", string(event.Type)),
			slog.String("task_id", event.TaskID),
			slog.String("error", err.Error()))
	}
}

// logError logs unexpected failures; not-found is a normal outcome.
func (s *taskServiceImpl) logError(ctx context.Context, op, id string, err error) {
	if store.IsNotFoundError(err) {
		return
	}
	s.logger.ErrorContext(ctx, "task operation failed",
		slog.String("operation", op),
		slog.String("task_id", id),
		slog.String("error", err.Error()))
}
