package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Settlement  SettlementConfig `mapstructure:"settlement"`
	RTGS        RTGSConfig       `mapstructure:"rtgs"`
	UPI         UPIConfig        `mapstructure:"upi"`
	Rail        RailConfig       `mapstructure:"rail"`
}

// ServerConfig contains operations HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or memory
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`
	SlowThreshold   time.Duration `mapstructure:"slowThreshold"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
	AutoMigrate     bool          `mapstructure:"autoMigrate"`
	Accounts        []AccountSeed `mapstructure:"accounts"`
}

// AccountSeed is a ledger account opened at startup when missing
type AccountSeed struct {
	ID             string `mapstructure:"id"`
	Currency       string `mapstructure:"currency"`
	OpeningBalance string `mapstructure:"openingBalance"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// SettlementConfig contains settlement executor settings
type SettlementConfig struct {
	Workers            int           `mapstructure:"workers"`
	RetainJobsFor      time.Duration `mapstructure:"retainJobsFor"`
	JanitorInterval    time.Duration `mapstructure:"janitorInterval"`
	DefaultMaxAttempts int           `mapstructure:"defaultMaxAttempts"`
	RetryInterval      time.Duration `mapstructure:"retryInterval"`
	MaxRetryInterval   time.Duration `mapstructure:"maxRetryInterval"`
	RailTimeout        time.Duration `mapstructure:"railTimeout"`
	DistributedLocks   bool          `mapstructure:"distributedLocks"`
	LockTTL            time.Duration `mapstructure:"lockTTL"`
	LockSweepInterval  time.Duration `mapstructure:"lockSweepInterval"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdownTimeout"`
}

// RTGSConfig contains RTGS channel limits and scheduling
type RTGSConfig struct {
	Currency          string        `mapstructure:"currency"`
	MinimumAmount     string        `mapstructure:"minimumAmount"`
	MaximumAmount     string        `mapstructure:"maximumAmount"`
	DailyLimit        string        `mapstructure:"dailyLimit"`
	SettlementAccount string        `mapstructure:"settlementAccount"`
	Priority          int           `mapstructure:"priority"`
	EnquiryInterval   time.Duration `mapstructure:"enquiryInterval"`
	MaxEnquiries      int           `mapstructure:"maxEnquiries"`
}

// UPIConfig contains UPI channel limits and scheduling
type UPIConfig struct {
	Currency           string        `mapstructure:"currency"`
	AmountCeiling      string        `mapstructure:"amountCeiling"`
	PendingTimeout     time.Duration `mapstructure:"pendingTimeout"`
	StatusPollInterval time.Duration `mapstructure:"statusPollInterval"`
	SettlementAccount  string        `mapstructure:"settlementAccount"`
	Priority           int           `mapstructure:"priority"`
}

// RailConfig selects and tunes the rail connectors
type RailConfig struct {
	Mode    string        `mapstructure:"mode"` // sandbox
	Latency time.Duration `mapstructure:"latency"`
}
