// Package ciutil detects the execution environment (CI or local) and
// resolves the environment variables the integration tests depend on, most
// importantly the URL of the Postgres database behind the blog store.
package ciutil
