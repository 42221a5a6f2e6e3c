package mocks

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
)

// MockCreatureClient stands in for the PokeAPI client in handler tests
type MockCreatureClient struct {
	ListFn              func(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	DetailsFn           func(ctx context.Context, idOrName string) (*pokeapi.Details, error)
	NamesStartingWithFn func(ctx context.Context, initial string) ([]pokeapi.Entry, error)
}

// List returns ListFn's result or an empty page
func (m *MockCreatureClient) List(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return &pokeapi.ListResponse{Results: []pokeapi.Entry{}}, nil
}

// Details returns DetailsFn's result or pokeapi.ErrNotFound
func (m *MockCreatureClient) Details(ctx context.Context, idOrName string) (*pokeapi.Details, error) {
	if m.DetailsFn != nil {
		return m.DetailsFn(ctx, idOrName)
	}
	return nil, pokeapi.ErrNotFound
}

// NamesStartingWith returns NamesStartingWithFn's result or no entries
func (m *MockCreatureClient) NamesStartingWith(ctx context.Context, initial string) ([]pokeapi.Entry, error) {
	if m.NamesStartingWithFn != nil {
		return m.NamesStartingWithFn(ctx, initial)
	}
	return []pokeapi.Entry{}, nil
}
