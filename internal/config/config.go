package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSQLite  = "sqlite"
	BackendMongoDB = "mongodb"
	BackendMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	History   HistoryConfig
	UI        UIConfig
	Scheduler SchedulerConfig
	Webhook   WebhookConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// StoreConfig selects where the history is persisted.
type StoreConfig struct {
	Backend    string
	SQLitePath string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// HistoryConfig holds the persisted history layout.
type HistoryConfig struct {
	Key   string
	Limit int
}

// UIConfig holds screen timings.
type UIConfig struct {
	CursorBlink       time.Duration
	AnimationInterval time.Duration
}

// SchedulerConfig holds cron schedules and session expiry.
type SchedulerConfig struct {
	SessionTTL           time.Duration
	SessionSweepSchedule string
	ExportSchedule       string
}

// WebhookConfig configures the optional record notifier.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether history export to Google Sheets is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
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
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	var errs []error
	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Backend:    getenvWithDefault("STORE_BACKEND", BackendSQLite),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "data/retrocalc.db"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "retrocalc"),
		},
		History: HistoryConfig{
			Key:   getenvWithDefault("HISTORY_KEY", "calculationHistory"),
			Limit: getenvInt("HISTORY_LIMIT", 10, &errs),
		},
		UI: UIConfig{
			CursorBlink:       getenvDuration("CURSOR_BLINK_INTERVAL", 500*time.Millisecond, &errs),
			AnimationInterval: getenvDuration("ANIMATION_INTERVAL", 1500*time.Millisecond, &errs),
		},
		Scheduler: SchedulerConfig{
			SessionTTL:           getenvDuration("SESSION_TTL", 30*time.Minute, &errs),
			SessionSweepSchedule: getenvWithDefault("SESSION_SWEEP_SCHEDULE", "@every 5m"),
			ExportSchedule:       getenvWithDefault("SHEETS_EXPORT_SCHEDULE", "0 * * * *"),
		},
		Webhook: WebhookConfig{
			URL:     os.Getenv("HISTORY_WEBHOOK_URL"),
			Timeout: getenvDuration("HISTORY_WEBHOOK_TIMEOUT", 5*time.Second, &errs),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
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

	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided")
		}
	case BackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND %q is not one of sqlite, mongodb, memory", c.Store.Backend)
	}

	if c.History.Key == "" {
		return errors.New("HISTORY_KEY must not be empty")
	}

	if c.History.Limit <= 0 {
		return errors.New("HISTORY_LIMIT must be positive")
	}

	if c.UI.CursorBlink <= 0 || c.UI.AnimationInterval <= 0 {
		return errors.New("CURSOR_BLINK_INTERVAL and ANIMATION_INTERVAL must be positive")
	}

	if c.Scheduler.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	if c.Scheduler.SessionSweepSchedule == "" {
		return errors.New("SESSION_SWEEP_SCHEDULE must be provided")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be set together")
	}

	if c.Sheets.Enabled() && c.Scheduler.ExportSchedule == "" {
		return errors.New("SHEETS_EXPORT_SCHEDULE must be provided when sheets export is enabled")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
