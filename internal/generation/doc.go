// Package generation defines the boundary between the application core and
// hosted language models. The Agent interface answers free-text prompts,
// possibly calling local tools on the way; platform/gemini implements it.
package generation
