package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/memory"
	"github.com/taskhub/taskhub-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTaskService(t *testing.T) {
	t.Parallel()

	_, err := NewTaskService(nil, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task store cannot be nil")

	svc, err := NewTaskService(&MockTaskStore{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTaskService_ErrorTranslation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	unavailable := store.NewStoreError("task", "get", "caller gave up during delay",
		fmt.Errorf("%w: %w", store.ErrUnavailable, context.DeadlineExceeded))

	t.Run("store not-found becomes service not-found", func(t *testing.T) {
		t.Parallel()
		m := &MockTaskStore{}
		m.On("Get", mock.Anything, "missing").Return(domain.Task{}, store.ErrTaskNotFound)
		svc, err := NewTaskService(m, discardLogger())
		require.NoError(t, err)

		_, err = svc.GetTask(ctx, "missing")
		assert.ErrorIs(t, err, ErrTaskNotFound)
		m.AssertExpectations(t)
	})

	t.Run("toggle not-found", func(t *testing.T) {
		t.Parallel()
		m := &MockTaskStore{}
		m.On("ToggleCompletion", mock.Anything, "missing").Return(domain.Task{}, store.ErrTaskNotFound)
		svc, _ := NewTaskService(m, discardLogger())

		_, err := svc.ToggleTask(ctx, "missing")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("delete of absent task is not-found", func(t *testing.T) {
		t.Parallel()
		m := &MockTaskStore{}
		m.On("Delete", mock.Anything, "missing").Return(false, nil)
		svc, _ := NewTaskService(m, discardLogger())

		assert.ErrorIs(t, svc.DeleteTask(ctx, "missing"), ErrTaskNotFound)
	})

	t.Run("unavailable is wrapped but still identifiable", func(t *testing.T) {
		t.Parallel()
		m := &MockTaskStore{}
		m.On("List", mock.Anything).Return(nil, unavailable)
		svc, _ := NewTaskService(m, discardLogger())

		_, err := svc.ListTasks(ctx)
		require.Error(t, err)

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "list", svcErr.Operation)
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		t.Parallel()
		m := &MockTaskStore{}
		invalid := domain.ValidateTaskTitle(" ")
		m.On("Create", mock.Anything, " ").Return(domain.Task{}, invalid)
		svc, _ := NewTaskService(m, discardLogger())

		_, err := svc.CreateTask(ctx, " ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		var svcErr *ServiceError
		assert.False(t, errors.As(err, &svcErr))
	})
}

// TestTaskService_WithRegistry drives the service against the real registry.
func TestTaskService_WithRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	registry := memory.NewTaskRegistry(discardLogger(), memory.WithLatency(memory.Latency{}))
	svc, err := NewTaskService(registry, discardLogger())
	require.NoError(t, err)

	milk, err := svc.CreateTask(ctx, "buy milk")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, "walk dog")
	require.NoError(t, err)

	toggled, err := svc.ToggleTask(ctx, milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	got, err := svc.GetTask(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, toggled, got)

	require.NoError(t, svc.DeleteTask(ctx, milk.ID))
	assert.ErrorIs(t, svc.DeleteTask(ctx, milk.ID), ErrTaskNotFound)

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "walk dog", tasks[0].Title)
}

func TestTaskService_CancelledRequest(t *testing.T) {
	t.Parallel()

	registry := memory.NewTaskRegistry(discardLogger(),
		memory.WithLatency(memory.Latency{Create: time.Second}))
	svc, err := NewTaskService(registry, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = svc.CreateTask(ctx, "abandoned")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TaskEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.TaskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func TestTaskService_PublishesLifecycleEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	registry := memory.NewTaskRegistry(discardLogger(), memory.WithLatency(memory.Latency{}))
	pub := &recordingPublisher{}
	svc, err := NewTaskService(registry, discardLogger(), WithEventPublisher(pub))
	require.NoError(t, err)

	task, err := svc.CreateTask(ctx, "buy milk")
	require.NoError(t, err)
	_, err = svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(ctx, task.ID))

	// Failed operations publish nothing.
	_, _ = svc.CreateTask(ctx, "  ")
	_ = svc.DeleteTask(ctx, task.ID)

	require.Len(t, pub.events, 3)
	assert.Equal(t, domain.TaskCreated, pub.events[0].Type)
	assert.False(t, pub.events[0].Task.Completed)
	assert.Equal(t, domain.TaskToggled, pub.events[1].Type)
	assert.True(t, pub.events[1].Task.Completed)
	assert.Equal(t, domain.TaskDeleted, pub.events[2].Type)
	assert.Nil(t, pub.events[2].Task)
	for _, ev := range pub.events {
		assert.Equal(t, task.ID, ev.TaskID)
	}
}

func TestTaskService_PublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	registry := memory.NewTaskRegistry(discardLogger(), memory.WithLatency(memory.Latency{}))
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, err := NewTaskService(registry, discardLogger(), WithEventPublisher(pub))
	require.NoError(t, err)

	task, err := svc.CreateTask(context.Background(), "buy milk")
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Len(t, pub.events, 1)
}
