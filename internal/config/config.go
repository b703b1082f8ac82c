// Package config centralises configuration parsing for the time tracker service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"timeTrackerService/internal/tracker"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config captures runtime configuration values.
type Config struct {
	WebPort           string
	Storage           string
	RedisAddr         string
	DSN               string
	PGTable           string
	DataFile          string
	Timezone          string
	WeekStart         time.Weekday
	AllowZeroDuration bool
	Locale            string
	LocaleFile        string // YAML locale table; overrides Locale when set.
	JWTSecret         string
	TokenTTL          time.Duration
}

// Load reads environment variables into Config, applying defaults for local use.
func Load() (Config, error) {
	cfg := Config{
		WebPort:           getEnv("WEB_PORT", "8080"),
		Storage:           strings.ToLower(getEnv("STORAGE", StorageFile)),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		DSN:               os.Getenv("DSN"),
		PGTable:           getEnv("PG_TABLE", tracker.DefaultPGTable),
		DataFile:          getEnv("DATA_FILE", "data/time_records.json"),
		Timezone:          getEnv("TIMEZONE", tracker.DefaultTimezone),
		AllowZeroDuration: getBoolEnv("ALLOW_ZERO_DURATION", false),
		Locale:            getEnv("LOCALE", "en"),
		LocaleFile:        os.Getenv("LOCALE_FILE"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getDurationEnv("TOKEN_TTL", 30*24*time.Hour),
	}

	weekStart, err := tracker.ParseWeekday(getEnv("WEEK_START", "monday"))
	if err != nil {
		return Config{}, fmt.Errorf("WEEK_START: %w", err)
	}
	cfg.WeekStart = weekStart

	switch cfg.Storage {
	case StorageMemory, StorageFile, StorageRedis:
	case StoragePostgres:
		if cfg.DSN == "" {
			return Config{}, fmt.Errorf("STORAGE=postgres requires DSN")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}

	return cfg, nil
}

// TrackerConfig resolves the timezone and locale into a tracker.Config.
func (c Config) TrackerConfig() (tracker.Config, error) {
	loc, err := tracker.LoadTimezone(c.Timezone)
	if err != nil {
		return tracker.Config{}, err
	}

	locale, ok := tracker.Locales[c.Locale]
	if !ok {
		return tracker.Config{}, fmt.Errorf("unknown locale %q", c.Locale)
	}
	if c.LocaleFile != "" {
		if locale, err = LoadLocale(c.LocaleFile); err != nil {
			return tracker.Config{}, err
		}
	}

	return tracker.Config{
		Clock:     tracker.SystemClock{},
		Location:  loc,
		Locale:    locale,
		WeekStart: c.WeekStart,
		AllowZero: c.AllowZeroDuration,
	}, nil
}

// LoadLocale reads a YAML locale table. Missing keys keep their English value.
func LoadLocale(path string) (tracker.Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tracker.Locale{}, fmt.Errorf("read locale file: %w", err)
	}

	locale := tracker.EnglishLocale
	if err := yaml.Unmarshal(data, &locale); err != nil {
		return tracker.Locale{}, fmt.Errorf("parse locale file: %w", err)
	}
	for i, name := range locale.Weekdays {
		if name == "" {
			return tracker.Locale{}, fmt.Errorf("locale file: weekday %d is empty", i)
		}
	}
	return locale, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
