package database

import "time"

const (
	DefaultMinConnections = 2
	DefaultConnectTimeout = 10 * time.Second
	DefaultAppName        = "dropgame"
	RuntimeParamAppName   = "application_name"
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)

// Log messages
const (
	LogMsgConnected        = "Connected to the database"
	LogMsgMigrationApplied = "Applied migration"
	LogMsgSchemaCurrent    = "Database schema is current"
)
