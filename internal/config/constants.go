package config

import "time"

// Store backends
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Defaults
const (
	DefaultStoreBackend    = StoreBackendPostgres
	DefaultDBMaxConns      = 10
	DefaultHealthPort      = 8080
	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 256
	DefaultReasonExpiry    = 24 * time.Hour
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"
