package mocks

import (
	"context"
	"sync"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/service"
)

// MockTaskService implements service.TaskService for testing.
// Unset function fields return zero values; calls are counted per method.
type MockTaskService struct {
	ListTasksFn  func(ctx context.Context) ([]domain.Task, error)
	GetTaskFn    func(ctx context.Context, id string) (domain.Task, error)
	CreateTaskFn func(ctx context.Context, title string) (domain.Task, error)
	ToggleTaskFn func(ctx context.Context, id string) (domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id string) error

	mu    sync.Mutex
	calls map[string]int
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// CallCount returns how many times method was invoked.
func (m *MockTaskService) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	m.record("ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []domain.Task{}, nil
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	m.record("GetTask")
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return domain.Task{}, nil
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, title string) (domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title)
	}
	return domain.Task{}, nil
}

// ToggleTask implements service.TaskService
func (m *MockTaskService) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	m.record("ToggleTask")
	if m.ToggleTaskFn != nil {
		return m.ToggleTaskFn(ctx, id)
	}
	return domain.Task{}, nil
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) error {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}
