//go:build tools
// +build tools

package tools

// Tracks the migration CLI used against internal/database/migrations.

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
