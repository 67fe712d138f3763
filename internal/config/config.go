package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the work-time control service
type Config struct {
	Database    DatabaseConfig
	Erp         ErpConfig
	Redis       RedisConfig
	Logging     LoggingConfig
	Settings    SettingsConfig
	Application ApplicationConfig
}

// DatabaseConfig holds local database configuration
type DatabaseConfig struct {
	Dir          string        `env:"WTC_DB_DIR"`
	Filename     string        `env:"WTC_DB_FILENAME"`
	QueryTimeout time.Duration `env:"WTC_DB_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `env:"WTC_DB_WRITE_TIMEOUT"`
}

// ErpConfig holds configuration for the ERP collaborators: the read-side
// Postgres database with reference data and the HTTP API used for syncing
// employee assignments.
type ErpConfig struct {
	PostgresDSN string        `env:"WTC_ERP_POSTGRES_DSN"` // empty disables the Postgres read side
	BaseURL     string        `env:"WTC_ERP_BASE_URL"`
	APIToken    string        `env:"WTC_ERP_API_TOKEN"`
	SyncTimeout time.Duration `env:"WTC_ERP_SYNC_TIMEOUT"`
}

// RedisConfig holds configuration for the settlement-status cache
type RedisConfig struct {
	Addr     string        `env:"WTC_REDIS_ADDR"` // empty disables caching
	Password string        `env:"WTC_REDIS_PASSWORD"`
	DB       int           `env:"WTC_REDIS_DB"`
	TTL      time.Duration `env:"WTC_REDIS_TTL"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `env:"WTC_LOG_LEVEL"`
	Format string `env:"WTC_LOG_FORMAT"`
}

// SettingsConfig holds the location of the control-settings file
type SettingsConfig struct {
	File string `env:"WTC_SETTINGS_FILE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"WTC_APP_TIMEOUT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".wtc")

	return &Config{
		Database: DatabaseConfig{
			Dir:          defaultDir,
			Filename:     "wtc.db",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Erp: ErpConfig{
			SyncTimeout: 30 * time.Second,
		},
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Settings: SettingsConfig{
			File: filepath.Join(defaultDir, "settings.yml"),
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the local database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv("WTC_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WTC_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("WTC_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("WTC_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}

	if dsn := os.Getenv("WTC_ERP_POSTGRES_DSN"); dsn != "" {
		c.Erp.PostgresDSN = dsn
	}
	if url := os.Getenv("WTC_ERP_BASE_URL"); url != "" {
		c.Erp.BaseURL = url
	}
	if token := os.Getenv("WTC_ERP_API_TOKEN"); token != "" {
		c.Erp.APIToken = token
	}
	if timeout := os.Getenv("WTC_ERP_SYNC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Erp.SyncTimeout = d
		}
	}

	if addr := os.Getenv("WTC_REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if password := os.Getenv("WTC_REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if db := os.Getenv("WTC_REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			c.Redis.DB = n
		}
	}
	if ttl := os.Getenv("WTC_REDIS_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Redis.TTL = d
		}
	}

	if level := os.Getenv("WTC_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("WTC_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	if file := os.Getenv("WTC_SETTINGS_FILE"); file != "" {
		c.Settings.File = file
	}

	if timeout := os.Getenv("WTC_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}

	return nil
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Database.QueryTimeout <= 0 {
		return &ValidationError{Field: "Database.QueryTimeout", Message: "must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ValidationError{Field: "Database.WriteTimeout", Message: "must be positive"}
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return &ValidationError{Field: "Redis.TTL", Message: "must be positive when caching is enabled"}
	}
	if c.Application.Timeout <= 0 {
		return &ValidationError{Field: "Application.Timeout", Message: "must be positive"}
	}
	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "config: " + e.Field + " " + e.Message
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Validate the result
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
