package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DiscordToken       string `validate:"required"`
	DiscordAppID       string `validate:"required,numeric"`
	DiscordGuildID     string `validate:"omitempty,numeric"`
	ForceCommandUpdate bool

	StoreBackend string `validate:"oneof=postgres memory"`
	DBUser       string `validate:"required_if=StoreBackend postgres"`
	DBPassword   string
	DBHost       string `validate:"required_if=StoreBackend postgres"`
	DBPort       string `validate:"required_if=StoreBackend postgres"`
	DBName       string `validate:"required_if=StoreBackend postgres"`
	DBMaxConns   int    `validate:"min=1,max=100"`

	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string
	Version     string

	HealthPort      int      `validate:"min=1,max=65535"`
	OpsAPIKey       string   `validate:"omitempty,min=16"`
	TrustedProxies  []string `validate:"dive,ip"`
	WorkerCount     int      `validate:"min=1,max=64"`
	WorkerQueueSize int      `validate:"min=1"`

	ReasonsPath  string
	ReasonExpiry time.Duration
	DevMode      bool
	// CooldownOverrides is a list like "steal=30m,attempt=5s"
	CooldownOverrides string
}

var validate = validator.New()

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:       getEnv("DISCORD_APP_ID", ""),
		DiscordGuildID:     getEnv("DISCORD_GUILD_ID", ""),
		ForceCommandUpdate: getEnvAsBool("DISCORD_FORCE_COMMAND_UPDATE", false),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", DefaultStoreBackend)),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "dropgame"),
		DBMaxConns:   getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),

		HealthPort:      getEnvAsInt("HEALTH_PORT", DefaultHealthPort),
		OpsAPIKey:       getEnv("OPS_API_KEY", ""),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		ReasonsPath:  getEnv("REASONS_PATH", ""),
		ReasonExpiry: getEnvAsDuration("REASON_EXPIRY", DefaultReasonExpiry),
		DevMode:      getEnvAsBool("DEV_MODE", false),

		CooldownOverrides: getEnv("COOLDOWN_OVERRIDES", ""),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", FormatValidationError(err))
	}

	return cfg, nil
}

// UsesDatabase reports whether the postgres store is selected
func (c *Config) UsesDatabase() bool {
	return c.StoreBackend == StoreBackendPostgres
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value when unset or empty
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma-separated variable, skipping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
