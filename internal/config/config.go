// Package config loads application configuration from environment variables.
// Every field has a default, so both commands run with an empty environment;
// Validate reports all problems at once.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Files    FilesConfig
	Rewrite  RewriteConfig
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// FilesConfig names the files read and written by the CLI.
type FilesConfig struct {
	// Input is the migration script to fix (default: migration-data.sql)
	Input string `env:"MIGRATION_INPUT" default:"migration-data.sql"`

	// Backup receives a verbatim copy of Input (default: migration-data.sql.backup)
	Backup string `env:"MIGRATION_BACKUP" default:"migration-data.sql.backup"`

	// Output receives the fixed script (default: migration-data-fixed.sql)
	Output string `env:"MIGRATION_OUTPUT" default:"migration-data-fixed.sql"`

	// Sample receives the static sample-data script (default: migration-clean-data.sql)
	Sample string `env:"MIGRATION_SAMPLE" default:"migration-clean-data.sql"`
}

// RewriteConfig controls how INSERT lines are rewritten.
type RewriteConfig struct {
	// IDMode is drop or uuid (default: drop)
	IDMode string `env:"REWRITE_ID_MODE" default:"drop"`

	// StrictArity leaves rows with mismatched column/value counts untouched (default: false)
	StrictArity bool `env:"REWRITE_STRICT_ARITY" default:"false"`
}

// DatabaseConfig holds the optional connection used to apply the fixed script.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Apply runs the fixed script against URL after writing it (default: false)
	Apply bool `env:"APPLY_FIXED" default:"false"`

	// ApplyTimeout bounds the whole apply transaction (default: 2m)
	ApplyTimeout time.Duration `env:"APPLY_TIMEOUT" default:"2m"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ServerConfig holds settings for migfix-server.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxBodySize caps a rewrite request body in bytes (default: 10MB)
	MaxBodySize int64 `env:"SERVER_MAX_BODY_SIZE" default:"10485760"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// String returns a safe representation for logging. The database URL is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Files: {Input: %q, Output: %q, Sample: %q}, ",
		c.Files.Input, c.Files.Output, c.Files.Sample)
	fmt.Fprintf(&b, "Rewrite: {IDMode: %q, StrictArity: %v}, ",
		c.Rewrite.IDMode, c.Rewrite.StrictArity)
	url := ""
	if c.Database.URL != "" {
		url = "[MASKED]"
	}
	fmt.Fprintf(&b, "Database: {URL: %s, Apply: %v}, ", url, c.Database.Apply)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
