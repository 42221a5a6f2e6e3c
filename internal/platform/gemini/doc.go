// Package gemini provides an implementation of the generation.Agent interface
// that answers free-text prompts with Google's Gemini API.
//
// This package is an infrastructure adapter: it owns the system prompt, the
// tool declarations exposed to the model and the function-calling loop, and
// translates Gemini outcomes into the generation package's errors.
//
// Key components:
//
// 1. Agent:
//   - Implements the generation.Agent interface
//   - Sends the conversation to the model and executes requested tools
//   - Bounds the number of tool calls per query
//
// 2. Tools:
//   - pokemon_info lists creatures whose name starts with a given character,
//     backed by the PokeAPI client
//
// 3. Response Processing:
//   - Detects safety blocks and empty answers
//   - Strips Markdown code fences the model sometimes adds around JSON
//
// The package depends on the google.golang.org/genai client library for
// communicating with the Gemini API.
package gemini
