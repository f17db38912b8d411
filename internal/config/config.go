package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"amphorank/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `validate:"required"`
	Admin   AdminConfig   `validate:"required"`
	Logging LoggingConfig `validate:"required"`
	Data    DataConfig
	Engine  EngineFileConfig
	Ranking RankingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	GinMode         string        `validate:"oneof=debug release test"`
	RequestTimeout  time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// AdminConfig holds the health, metrics and pprof listener settings
type AdminConfig struct {
	Port    string `validate:"required,numeric"`
	Enabled bool
}

// DataConfig holds the input sheet locations
type DataConfig struct {
	StackFile    string
	HoldDropFile string
	Sheet        string // xlsx sheet; empty selects the first sheet
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
	Format string `validate:"oneof=console json"`
}

// EngineFileConfig points at an optional YAML engine configuration
type EngineFileConfig struct {
	Path string
}

// RankingConfig holds run-level ranking settings
type RankingConfig struct {
	RandomSeed int64
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Admin:   *loadAdminConfig(),
		Data:    *loadDataConfig(),
		Logging: *loadLoggingConfig(),
		Engine:  EngineFileConfig{Path: getEnvOrDefault("ENGINE_CONFIG", "")},
		Ranking: RankingConfig{RandomSeed: getEnvInt64OrDefault("RANDOM_SEED", 42)},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		RequestTimeout:  getEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadAdminConfig() *AdminConfig {
	return &AdminConfig{
		Port:    getEnvOrDefault("ADMIN_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("ADMIN_ENABLED", true),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		StackFile:    getEnvOrDefault("STACK_FILE", ""),
		HoldDropFile: getEnvOrDefault("HOLD_DROP_FILE", ""),
		Sheet:        getEnvOrDefault("XLSX_SHEET", ""),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console")),
	}
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if (config.Data.StackFile == "") != (config.Data.HoldDropFile == "") {
		return errors.ConfigInvalid("STACK_FILE and HOLD_DROP_FILE must be set together")
	}
	return nil
}

// HasDataFiles reports whether both input sheets are configured.
func (c *Config) HasDataFiles() bool {
	return c.Data.StackFile != "" && c.Data.HoldDropFile != ""
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
