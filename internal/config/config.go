// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // DAY_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"

	"lg/fittrack-go-api/internal/kvstore"
)

// Config captures runtime configuration for the API and the CLI.
type Config struct {
	HTTPAddress string
	GinMode     string
	KeyPrefix   string
	Location    *time.Location // calendar zone that decides "today"
	Store       kvstore.Options
}

// Load reads .env (if present) and the environment, applying defaults for
// local use.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	zone := getEnv("DAY_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Config{}, fmt.Errorf("DAY_TIMEZONE %q: %w", zone, err)
	}

	cfg := Config{
		HTTPAddress: getEnv("HTTP_ADDRESS", "localhost:3000"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		KeyPrefix:   getEnvAllowEmpty("KEY_PREFIX", "fittrack-"),
		Location:    loc,
		Store: kvstore.Options{
			Driver:        getEnv("STORE_DRIVER", kvstore.DriverSQLite),
			SQLitePath:    getEnv("SQLITE_PATH", "fittrack.db"),
			PostgresURL:   os.Getenv("DB_URL"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getIntEnv("REDIS_DB", 0),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvAllowEmpty distinguishes unset from set-to-empty.
func getEnvAllowEmpty(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
