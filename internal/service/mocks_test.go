package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/store"
)

// MockTaskStore is a mock implementation of store.TaskStore
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) Get(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) Create(ctx context.Context, title string) (domain.Task, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) ToggleCompletion(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBlogStore is a mock implementation of store.BlogStore
type MockBlogStore struct {
	mock.Mock
}

func (m *MockBlogStore) List(ctx context.Context, filter store.BlogPostFilter) ([]*domain.BlogPost, error) {
	args := m.Called(ctx, filter)
	posts, _ := args.Get(0).([]*domain.BlogPost)
	return posts, args.Error(1)
}

func (m *MockBlogStore) Create(ctx context.Context, post *domain.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogStore) Update(
	ctx context.Context,
	id int64,
	update domain.BlogPostUpdate,
) (*domain.BlogPost, error) {
	args := m.Called(ctx, id, update)
	post, _ := args.Get(0).(*domain.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(
	ctx context.Context,
	email, password string,
	metadata map[string]any,
) (*domain.Account, error) {
	args := m.Called(ctx, email, password, metadata)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}
