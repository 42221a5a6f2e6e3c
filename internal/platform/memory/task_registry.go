package memory

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// Latency holds the simulated delay applied before each registry operation.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Toggle time.Duration
	Delete time.Duration
}

// DefaultLatency returns the delays used when none are configured.
func DefaultLatency() Latency {
	return Latency{
		List:   500 * time.Millisecond,
		Get:    300 * time.Millisecond,
		Create: 400 * time.Millisecond,
		Toggle: 300 * time.Millisecond,
		Delete: 300 * time.Millisecond,
	}
}

// Option configures a TaskRegistry.
type Option func(*TaskRegistry)

// WithLatency overrides the per-operation delays.
func WithLatency(l Latency) Option {
	return func(r *TaskRegistry) {
		r.latency = l
	}
}

// WithClock replaces the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *TaskRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator replaces the task ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *TaskRegistry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// TaskRegistry is an in-memory implementation of store.TaskStore.
type TaskRegistry struct {
	logger  *slog.Logger
	latency Latency
	now     func() time.Time
	newID   func() string

	mu          sync.Mutex
	order       *list.List // of domain.Task, acceptance order
	index       map[string]*list.Element
	retired     map[string]struct{} // ids of deleted tasks, never issued again
	lastCreated time.Time
}

// Ensure TaskRegistry implements store.TaskStore.
var _ store.TaskStore = (*TaskRegistry)(nil)

// NewTaskRegistry creates an empty registry. A nil logger falls back to slog.Default.
func NewTaskRegistry(logger *slog.Logger, opts ...Option) *TaskRegistry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &TaskRegistry{
		logger:  logger.With(slog.String("component", "task_registry")),
		latency: DefaultLatency(),
		now:     time.Now,
		newID:   uuid.NewString,
		order:   list.New(),
		index:   make(map[string]*list.Element),
		retired: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns a snapshot of every task in acceptance order.
func (r *TaskRegistry) List(ctx context.Context) ([]domain.Task, error) {
	if err := r.wait(ctx, "list", r.latency.List); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]domain.Task, 0, r.order.Len())
	for e := r.order.Front(); e != nil; e = e.Next() {
		tasks = append(tasks, e.Value.(domain.Task))
	}
	return tasks, nil
}

// Get returns the task with the given ID or store.ErrTaskNotFound.
func (r *TaskRegistry) Get(ctx context.Context, id string) (domain.Task, error) {
	if err := r.wait(ctx, "get", r.latency.Get); err != nil {
		return domain.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.index[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return e.Value.(domain.Task), nil
}

// Create validates title and appends a new, not yet completed task.
func (r *TaskRegistry) Create(ctx context.Context, title string) (domain.Task, error) {
	if err := domain.ValidateTaskTitle(title); err != nil {
		return domain.Task{}, err
	}
	if err := r.wait(ctx, "create", r.latency.Create); err != nil {
		return domain.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for r.issued(id) {
		id = r.newID()
	}

	// CreatedAt never runs backwards relative to acceptance order.
	createdAt := r.now().UTC()
	if createdAt.Before(r.lastCreated) {
		createdAt = r.lastCreated
	}
	r.lastCreated = createdAt

	task := domain.Task{
		ID:        id,
		Title:     title,
		Completed: false,
		CreatedAt: createdAt,
	}
	r.index[id] = r.order.PushBack(task)

	r.logger.Debug("task created",
		slog.String("task_id", id),
		slog.Int("task_count", r.order.Len()))
	return task, nil
}

// ToggleCompletion flips the Completed flag of a task in place.
func (r *TaskRegistry) ToggleCompletion(ctx context.Context, id string) (domain.Task, error) {
	if err := r.wait(ctx, "toggle", r.latency.Toggle); err != nil {
		return domain.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.index[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	task := e.Value.(domain.Task).Toggled()
	e.Value = task

	r.logger.Debug("task toggled",
		slog.String("task_id", id),
		slog.Bool("completed", task.Completed))
	return task, nil
}

// Delete removes a task and reports whether it existed.
func (r *TaskRegistry) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.wait(ctx, "delete", r.latency.Delete); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.index[id]
	if !ok {
		return false, nil
	}
	r.order.Remove(e)
	delete(r.index, id)
	r.retired[id] = struct{}{}

	r.logger.Debug("task deleted",
		slog.String("task_id", id),
		slog.Int("task_count", r.order.Len()))
	return true, nil
}

// issued reports whether id belongs to a live or deleted task.
// Callers must hold r.mu.
func (r *TaskRegistry) issued(id string) bool {
	if _, ok := r.index[id]; ok {
		return true
	}
	_, ok := r.retired[id]
	return ok
}

// wait blocks for d without holding the registry lock. It returns early with
// an error wrapping store.ErrUnavailable and the context error when ctx ends.
func (r *TaskRegistry) wait(ctx context.Context, op string, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return r.interrupted(op, err)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return r.interrupted(op, ctx.Err())
	}
}

func (r *TaskRegistry) interrupted(op string, cause error) error {
	r.logger.Debug("task operation abandoned before it started",
		slog.String("operation", op),
		slog.String("reason", cause.Error()))
	return store.NewStoreError("task", op, "caller gave up during delay",
		fmt.Errorf("%w: %w", store.ErrUnavailable, cause))
}
