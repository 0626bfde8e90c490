package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from the YAML file named after the
// environment, then applies PL_ environment overrides
func LoadConfig() (*Config, error) {
	// a missing .env file is normal outside development
	_ = loadDotEnvFile()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	fileInts := make(map[string]any, len(intOverrides))
	for _, key := range intOverrides {
		fileInts[key] = v.Get(key)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v, fileInts)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	return &config, nil
}

// loadDotEnvFile loads the first .env file found on the search paths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connMaxIdleTime", "15m")
	v.SetDefault("database.queryTimeout", "5s")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", "1s")
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("settlement.workers", 4)
	v.SetDefault("settlement.retainJobsFor", "1h")
	v.SetDefault("settlement.janitorInterval", "1m")
	v.SetDefault("settlement.defaultMaxAttempts", 3)
	v.SetDefault("settlement.retryInterval", "500ms")
	v.SetDefault("settlement.maxRetryInterval", "30s")
	v.SetDefault("settlement.railTimeout", "30s")
	v.SetDefault("settlement.distributedLocks", false)
	v.SetDefault("settlement.lockTTL", "2m")
	v.SetDefault("settlement.lockSweepInterval", "5m")
	v.SetDefault("settlement.shutdownTimeout", "30s")

	v.SetDefault("rtgs.currency", "INR")
	v.SetDefault("rtgs.minimumAmount", "200000.00")
	v.SetDefault("rtgs.maximumAmount", "100000000.00")
	v.SetDefault("rtgs.dailyLimit", "500000000.00")
	v.SetDefault("rtgs.settlementAccount", "SETTLEMENT-RTGS")
	v.SetDefault("rtgs.priority", 5)
	v.SetDefault("rtgs.enquiryInterval", "30s")
	v.SetDefault("rtgs.maxEnquiries", 10)

	v.SetDefault("upi.currency", "INR")
	v.SetDefault("upi.amountCeiling", "100000.00")
	v.SetDefault("upi.pendingTimeout", "5m")
	v.SetDefault("upi.statusPollInterval", "15s")
	v.SetDefault("upi.priority", 3)
	v.SetDefault("upi.settlementAccount", "SETTLEMENT-UPI")

	v.SetDefault("rail.mode", "sandbox")
	v.SetDefault("rail.latency", "50ms")
}

// getEnvironment determines the environment from PL_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// intOverrides are integer settings taken from the environment. Values that
// are not positive integers are ignored, even where AutomaticEnv would pick
// them up under the same name.
var intOverrides = map[string]string{
	"PL_DB_MAX_OPEN_CONNS":  "database.maxOpenConns",
	"PL_DB_MAX_IDLE_CONNS":  "database.maxIdleConns",
	"PL_SERVER_PORT":        "server.port",
	"PL_SETTLEMENT_WORKERS": "settlement.workers",
}

// processEnvOverrides lets the short PL_DB_* variables override the file.
// fileInts holds the intOverrides values read before AutomaticEnv.
func processEnvOverrides(v *viper.Viper, fileInts map[string]any) {
	overrides := map[string]string{
		"PL_DB_DRIVER":   "database.driver",
		"PL_DB_HOST":     "database.host",
		"PL_DB_PORT":     "database.port",
		"PL_DB_USERNAME": "database.username",
		"PL_DB_PASSWORD": "database.password",
		"PL_DB_NAME":     "database.database",
		"PL_DB_SSL_MODE": "database.sslMode",

		"PL_SERVER_HOST":  "server.host",
		"PL_LOGGER_LEVEL": "logger.level",
	}
	for env, key := range overrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	for env, key := range intOverrides {
		if os.Getenv(env) == "" {
			continue
		}
		if value := getEnvInt(env, 0); value > 0 {
			v.Set(key, value)
		} else {
			v.Set(key, fileInts[key])
		}
	}
}

// getEnvInt reads an integer environment variable
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
