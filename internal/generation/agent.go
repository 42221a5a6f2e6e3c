package generation

import "context"

// Agent answers a free-text prompt.
// This interface keeps HTTP handlers independent of the model vendor.
type Agent interface {
	// Query sends prompt to the model and returns its final text answer.
	// Tool calls requested by the model are executed before answering.
	//
	// Returns ErrEmptyPrompt for blank input, ErrContentBlocked when the
	// model refuses, and ErrInvalidResponse or ErrTransientFailure for
	// upstream problems.
	Query(ctx context.Context, prompt string) (string, error)
}
