// Package postgres provides the PostgreSQL implementation of store.BlogStore
// together with connection setup and embedded goose migrations for the
// hosted database.
package postgres
