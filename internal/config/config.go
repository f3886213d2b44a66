package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"hoteldash/internal/log"
	"hoteldash/internal/models"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

const dayLayout = "2006-01-02"

type Config struct {
	// HTTP Server
	Port string

	// Dataset
	DataSource   string // csv, json, sqlite, postgres
	DataPath     string
	SQLiteDBPath string
	PostgresDSN  string

	// Logging
	LogLevel  string
	LogFormat string

	// Dashboard
	RangeCacheSize int
	SettingsFile   string
	Settings       Settings
}

// Settings is the optional YAML file pointed to by DASHBOARD_CONFIG.
type Settings struct {
	DefaultRange RangeSettings `yaml:"default_range"`
	Timezone     string        `yaml:"timezone"`
}

type RangeSettings struct {
	From string `yaml:"from"` // Inclusive, YYYY-MM-DD
	To   string `yaml:"to"`   // Inclusive, YYYY-MM-DD
}

func defaultSettings() Settings {
	return Settings{
		DefaultRange: RangeSettings{From: "2015-07-01", To: "2015-08-31"},
		Timezone:     "UTC",
	}
}

// Load reads .env (if present), the environment, and the settings file.
func Load() (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DataSource:   getEnv("DATA_SOURCE", "csv"),
		DataPath:     getEnv("DATA_PATH", "hotel_bookings.csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/bookings.db"),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		RangeCacheSize: getEnvInt("RANGE_CACHE_SIZE", 64),
		SettingsFile:   getEnv("DASHBOARD_CONFIG", ""),
		Settings:       defaultSettings(),
	}

	if cfg.SettingsFile != "" {
		f, err := os.Open(cfg.SettingsFile)
		if err != nil {
			return nil, fmt.Errorf("open settings: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg.Settings); err != nil {
			return nil, fmt.Errorf("decode settings %s: %w", cfg.SettingsFile, err)
		}
	}

	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataSource {
	case "csv", "json":
		if c.DataPath == "" {
			problems = append(problems, fmt.Sprintf("DATA_PATH is required for the %s data source", c.DataSource))
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH is required for the sqlite data source")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			problems = append(problems, "POSTGRES_DSN is required for the postgres data source")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data source '%s': must be one of [csv json sqlite postgres]", c.DataSource))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.RangeCacheSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid range cache size %d: must be positive", c.RangeCacheSize))
	}

	if _, err := c.DefaultRange(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("config validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Settings.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", c.Settings.Timezone, err)
	}
	return loc, nil
}

// DefaultRange is the range the dashboard opens with.
func (c *Config) DefaultRange() (models.DateRange, error) {
	loc, err := c.Location()
	if err != nil {
		return models.DateRange{}, err
	}
	from, err := ParseDay(c.Settings.DefaultRange.From, loc)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("invalid default_range.from: %w", err)
	}
	to, err := ParseDay(c.Settings.DefaultRange.To, loc)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("invalid default_range.to: %w", err)
	}
	if to.Before(from) {
		return models.DateRange{}, fmt.Errorf("invalid default_range: to %s is before from %s", c.Settings.DefaultRange.To, c.Settings.DefaultRange.From)
	}
	return models.NewDateRange(from, to), nil
}

// ParseDay parses YYYY-MM-DD as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, loc)
}

// FormatDay is the inverse of ParseDay.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
