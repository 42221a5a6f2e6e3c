package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taskhub/taskhub-api/internal/redact"
)

const (
	// StandardCIPort is the Postgres port assumed in CI when none is given.
	StandardCIPort = "5432"

	// StandardCIDatabase is the database name used in CI when the URL has none.
	StandardCIDatabase = "taskhub_test"

	// StandardCIOptions are the connection options applied in CI when the URL has none.
	StandardCIOptions = "sslmode=disable"
)

// GetTestDatabaseURL returns the database URL integration tests should use,
// or "" when none is configured. Variables are consulted in order:
// TASKHUB_TEST_DATABASE_URL, TASKHUB_DATABASE_URL, DATABASE_URL.
//
// In CI a local URL missing its port, database name or options is completed
// with the standard CI values.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvTestDatabaseURL, EnvAppDatabaseURL, EnvDatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := standardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to standardize database URL",
				"error", redact.Error(err),
				"original_url", redact.String(dbURL),
			)
		}
		return dbURL
	}

	if standardized != dbURL && logger != nil {
		logger.Info("Standardized database URL for CI environment",
			"standardized", redact.String(standardized))
	}
	return standardized
}

// standardizeDatabaseURL fills in the CI defaults for a postgres URL.
// Credentials are left untouched.
func standardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	host := parsed.Hostname()
	if (host == "" || host == "localhost" || host == "127.0.0.1") && parsed.Port() == "" {
		if host == "" {
			host = "localhost"
		}
		parsed.Host = host + ":" + StandardCIPort
	}

	if strings.TrimPrefix(parsed.Path, "/") == "" {
		parsed.Path = "/" + StandardCIDatabase
	}

	if parsed.RawQuery == "" {
		parsed.RawQuery = StandardCIOptions
	}

	return parsed.String(), nil
}
