package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequiredEnvVars lists the variables every deployment must set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DISCORD_TOKEN",
	"DISCORD_APP_ID",
}

// DatabaseEnvVars are additionally required when STORE_BACKEND is postgres
var DatabaseEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := RequiredEnvVars
	if strings.ToLower(getEnv("STORE_BACKEND", DefaultStoreBackend)) == StoreBackendPostgres {
		required = append(append([]string(nil), required...), DatabaseEnvVars...)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// FormatValidationError flattens validator errors into "field: reason" pairs
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required", "required_if":
			parts = append(parts, field+": is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s: must be one of [%s]", field, e.Param()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s: must be at least %s", field, e.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s: must be at most %s", field, e.Param()))
		case "numeric":
			parts = append(parts, field+": must be a numeric snowflake")
		default:
			parts = append(parts, field+": invalid value")
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
