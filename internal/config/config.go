package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Platform  PlatformConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
	Sessions  SessionsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// PlatformConfig points at the upstream widget API the engine consumes.
type PlatformConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig configures the optional Google Sheets lead export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	LeadRange       string
}

// Enabled reports whether the lead export has everything it needs.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// SchedulerConfig holds cron-related settings.
type SchedulerConfig struct {
	LeadExportCron string
	SweepInterval  time.Duration
}

// SessionsConfig tunes the widget session lifecycle.
type SessionsConfig struct {
	Backend     string // memory | mongo
	IdleTimeout time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Platform: PlatformConfig{
			BaseURL: os.Getenv("PLATFORM_BASE_URL"),
			APIKey:  os.Getenv("PLATFORM_API_KEY"),
			Timeout: getenvDuration("PLATFORM_TIMEOUT", 15*time.Second),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "widget"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("LEAD_EXPORT_SHEET_ID"),
			LeadRange:       getenvWithDefault("LEAD_EXPORT_RANGE", "Leads!A:H"),
		},
		Scheduler: SchedulerConfig{
			LeadExportCron: getenvWithDefault("LEAD_EXPORT_CRON", "0 6 * * *"),
			SweepInterval:  getenvDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		},
		Sessions: SessionsConfig{
			Backend:     getenvWithDefault("SESSION_STORE", "mongo"),
			IdleTimeout: getenvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Platform.BaseURL == "" {
		return errors.New("PLATFORM_BASE_URL must be provided")
	}

	switch c.Sessions.Backend {
	case "memory":
	case "mongo":
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when SESSION_STORE=mongo")
		}
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.Sessions.Backend)
	}

	if c.Scheduler.LeadExportCron == "" {
		return errors.New("LEAD_EXPORT_CRON must be provided")
	}

	if c.Sessions.IdleTimeout <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		return parsed
	}

	// Bare integers are read as seconds.
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return fallback
}
