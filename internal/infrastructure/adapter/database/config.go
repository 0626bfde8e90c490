package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
)

// Config represents database configuration
type Config struct {
	Driver          string        `mapstructure:"db_driver"`
	Host            string        `mapstructure:"db_host"`
	Port            int           `mapstructure:"db_port"`
	Username        string        `mapstructure:"db_username"`
	Password        string        `mapstructure:"db_password"`
	Database        string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"db_ssl_mode"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"db_conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"db_query_timeout"`
	SlowThreshold   time.Duration `mapstructure:"db_slow_threshold"`
	LogLevel        string        `mapstructure:"db_log_level"`
	RetryAttempts   int           `mapstructure:"db_retry_attempts"`
	RetryDelay      time.Duration `mapstructure:"db_retry_delay"`
	MonitorInterval time.Duration `mapstructure:"db_monitor_interval"`
}

// DefaultConfig returns a Config with default values
// No sensitive information is hardcoded - all must come from environment variables
func DefaultConfig() *Config {
	return &Config{
		Driver:          configEnvOrDefault("PL_DB_DRIVER", "postgres"),
		Host:            configEnv("PL_DB_HOST"),
		Port:            configEnvAsInt("PL_DB_PORT", 5432),
		Username:        configEnv("PL_DB_USERNAME"),
		Password:        configEnv("PL_DB_PASSWORD"),
		Database:        configEnv("PL_DB_NAME"),
		SSLMode:         configEnvOrDefault("PL_DB_SSL_MODE", "disable"),
		MaxOpenConns:    configEnvAsInt("PL_DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    configEnvAsInt("PL_DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    10 * time.Second,
		SlowThreshold:   200 * time.Millisecond,
		LogLevel:        configEnvOrDefault("PL_LOGGER_LEVEL", "info"),
		RetryAttempts:   configEnvAsInt("PL_DB_RETRY_ATTEMPTS", 3),
		RetryDelay:      2 * time.Second,
		MonitorInterval: 30 * time.Second,
	}
}

// FromAppConfig builds the connection settings from the application config
func FromAppConfig(cfg config.DatabaseConfig, logLevel string) (*Config, error) {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid database port %q: %w", cfg.Port, err)
	}

	c := DefaultConfig()
	c.Driver = cfg.Driver
	c.Host = cfg.Host
	c.Port = port
	c.Username = cfg.Username
	c.Password = cfg.Password
	c.Database = cfg.Database
	if cfg.SSLMode != "" {
		c.SSLMode = cfg.SSLMode
	}
	if cfg.MaxOpenConns > 0 {
		c.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		c.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnMaxLifetime > 0 {
		c.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		c.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}
	if cfg.QueryTimeout > 0 {
		c.QueryTimeout = cfg.QueryTimeout
	}
	if cfg.SlowThreshold > 0 {
		c.SlowThreshold = cfg.SlowThreshold
	}
	if cfg.RetryAttempts > 0 {
		c.RetryAttempts = cfg.RetryAttempts
	}
	if cfg.RetryDelay > 0 {
		c.RetryDelay = cfg.RetryDelay
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	return c, c.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Password == "" {
		return errors.New("database password is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
		"prefer":      true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max idle connections (%d) exceed max open connections (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %s", c.RetryDelay)
	}

	validLogLevels := map[string]bool{
		"silent": true,
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// WithMaxOpenConnections returns a copy of the config with updated max open connections
func (c *Config) WithMaxOpenConnections(max int) *Config {
	newConfig := *c
	newConfig.MaxOpenConns = max
	return &newConfig
}

// WithQueryTimeout returns a copy of the config with updated query timeout
func (c *Config) WithQueryTimeout(timeout time.Duration) *Config {
	newConfig := *c
	newConfig.QueryTimeout = timeout
	return &newConfig
}

// configEnv gets a value from environment variables with no default
func configEnv(key string) string {
	return os.Getenv(key)
}

// configEnvOrDefault gets a value from environment variables with a default value
func configEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// configEnvAsInt gets an integer value from environment variables with a default
func configEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
