package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SourceConfig selects and configures the spreadsheet-backed data
// source. Kind is one of "csv", "xlsx" or "sheets".
type SourceConfig struct {
	Kind            string
	CSVFile         string
	XLSXFile        string
	XLSXSheet       string
	RefreshInterval time.Duration
	SnapshotMaxAge  time.Duration

	SheetsClientID      string
	SheetsClientSecret  string
	SheetsRefreshToken  string
	SheetsSpreadsheetID string
	SheetsSheetName     string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment still wins.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Source: SourceConfig{
			Kind:            getEnvString("SOURCE_KIND", "csv"),
			CSVFile:         getEnvString("SOURCE_CSV_FILE", "sales.csv"),
			XLSXFile:        getEnvString("SOURCE_XLSX_FILE", "sales.xlsx"),
			XLSXSheet:       getEnvString("SOURCE_XLSX_SHEET", ""),
			RefreshInterval: getEnvDuration("SOURCE_REFRESH_INTERVAL", 15*time.Minute),
			SnapshotMaxAge:  getEnvDuration("SOURCE_SNAPSHOT_MAX_AGE", time.Hour),

			SheetsClientID:      getEnvString("SHEETS_CLIENT_ID", ""),
			SheetsClientSecret:  getEnvString("SHEETS_CLIENT_SECRET", ""),
			SheetsRefreshToken:  getEnvString("SHEETS_REFRESH_TOKEN", ""),
			SheetsSpreadsheetID: getEnvString("SHEETS_SPREADSHEET_ID", ""),
			SheetsSheetName:     getEnvString("SHEETS_SHEET_NAME", "Sales"),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 10),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8084"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	switch c.Source.Kind {
	case "csv":
		if c.Source.CSVFile == "" {
			return fmt.Errorf("CSV file path cannot be empty")
		}
	case "xlsx":
		if c.Source.XLSXFile == "" {
			return fmt.Errorf("XLSX file path cannot be empty")
		}
	case "sheets":
		if c.Source.SheetsClientID == "" || c.Source.SheetsClientSecret == "" ||
			c.Source.SheetsRefreshToken == "" || c.Source.SheetsSpreadsheetID == "" {
			return fmt.Errorf("sheets source requires client id, client secret, refresh token and spreadsheet id")
		}
	default:
		return fmt.Errorf("unknown source kind %q, must be one of: csv, xlsx, sheets", c.Source.Kind)
	}

	if c.Source.RefreshInterval <= 0 {
		return fmt.Errorf("source refresh interval must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}
	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

// CacheKey identifies the active source for snapshot caching.
func (c *SourceConfig) CacheKey() string {
	switch c.Kind {
	case "csv":
		return "csv_" + c.CSVFile
	case "xlsx":
		return "xlsx_" + c.XLSXFile
	case "sheets":
		return "sheets_" + c.SheetsSpreadsheetID
	default:
		return c.Kind
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
