// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. It provides
// type-safe access to the settings needed by the server, the task registry,
// the blog database, the identity provider, the creature-data client and the
// LLM agent.
package config
