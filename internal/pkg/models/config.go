package models

import "time"

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NSQ        NSQConfig
	Telegram   TelegramConfig
	Extraction ExtractionConfig
	Match      MatchConfig
	Logger     LoggerConfig
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig holds the health/liveness HTTP server configuration
type ServerConfig struct {
	Port            int
	ShutdownTimeout int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig holds NSQ producer configuration
type NSQConfig struct {
	Address string
	Enabled bool
}

// TelegramConfig holds Bot API transport configuration
type TelegramConfig struct {
	Token       string
	APIBaseURL  string
	PollTimeout time.Duration
}

// ExtractionConfig holds the text-understanding service configuration.
// APIKeys is an ordered credential list; an empty list disables extraction.
type ExtractionConfig struct {
	APIKeys []string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// MatchConfig holds matching engine thresholds
type MatchConfig struct {
	SearchRadiusM       float64
	InterceptionRadiusM float64
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
