// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests are skipped unless TASKHUB_TEST_DATABASE_URL is set.
package testdb
