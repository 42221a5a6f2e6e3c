package generation

import "errors"

// Common errors returned by Agent implementations
var (
	// ErrEmptyPrompt is returned when the prompt is empty or blank
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidResponse is returned when the model response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned when the model could not be reached
	ErrTransientFailure = errors.New("transient error calling language model")

	// ErrToolLimitExceeded is returned when the model keeps requesting tools
	// past the configured bound
	ErrToolLimitExceeded = errors.New("language model exceeded tool call limit")

	// ErrInvalidConfig is returned when the agent configuration is invalid
	ErrInvalidConfig = errors.New("invalid agent configuration")
)
