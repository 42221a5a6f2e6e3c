package mocks

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/generation"
)

// MockAgent implements generation.Agent for testing
type MockAgent struct {
	QueryFn func(ctx context.Context, prompt string) (string, error)

	// Answer is returned when QueryFn is nil
	Answer string
	Err    error
}

var _ generation.Agent = (*MockAgent)(nil)

// Query implements generation.Agent
func (m *MockAgent) Query(ctx context.Context, prompt string) (string, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, prompt)
	}
	return m.Answer, m.Err
}
