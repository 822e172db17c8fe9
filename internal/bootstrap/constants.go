package bootstrap

import "time"

// Log messages for startup
const (
	LogMsgLoggingInitialized = "Logging initialized"
	LogMsgStarting           = "Starting dropgame"
	LogMsgConfigurationUsed  = "Configuration loaded"
	LogMsgStoreSelected      = "Store selected"
	LogMsgConfigFailed       = "Configuration failed"
	LogMsgRunFailed          = "Bot failed"
)

// Error messages for startup
const (
	ErrMsgOpenDatabase = "failed to open database: %w"
	ErrMsgMigrate      = "failed to migrate database: %w"
	ErrMsgOpsServer    = "ops server: %w"
)

// Shutdown messages
const (
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgServerForcedShutdown = "Ops server forced to shutdown"
	LogMsgGatewayCloseFailed   = "Gateway close failed"
	LogMsgStopped              = "Stopped"
)

// Database pool lifetimes
const (
	DBMaxConnIdle = 5 * time.Minute
	DBMaxConnLife = time.Hour
)
