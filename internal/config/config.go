package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultDBPath     = "ladder.db"
	DefaultAddr       = ":8080"
	DefaultFieldCount = 4
)

type Config struct {
	DBPath     string
	Addr       string
	FieldCount int
	// Zero seeds the shuffle from the clock
	Seed     uint64
	LogLevel slog.Level
}

// Load reads a .env file when there is one, then the LADDER_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:     getEnvOrDefault("LADDER_DB", DefaultDBPath),
		Addr:       getEnvOrDefault("LADDER_ADDR", DefaultAddr),
		FieldCount: DefaultFieldCount,
		LogLevel:   slog.LevelInfo,
	}

	if v := os.Getenv("LADDER_FIELDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LADDER_FIELDS must be a positive integer, got %q", v)
		}
		cfg.FieldCount = n
	}

	if v := os.Getenv("LADDER_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("LADDER_SEED must be a non-negative integer, got %q", v)
		}
		cfg.Seed = seed
	}

	if v := os.Getenv("LADDER_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("LADDER_LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// Logger builds the JSON logger every command and the server share.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
