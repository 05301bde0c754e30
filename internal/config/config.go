package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings, all overridable through environment
// variables.
type Config struct {
	Port           string
	DBPath         string
	MaxUploadBytes int64
	CleanupTTL     time.Duration

	// Defaults for the duration estimate when a request omits rider data.
	DefaultPowerWatts float64
	DefaultWeightKg   float64
}

// Load reads configuration from the environment, filling in defaults.
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", ":8080"),
		DBPath:            getEnv("DB_PATH", "./data/gpxscaler.db"),
		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_BYTES", 50*1024*1024),
		CleanupTTL:        getEnvDuration("CLEANUP_TTL", time.Hour),
		DefaultPowerWatts: getEnvFloat("DEFAULT_POWER_WATTS", 250),
		DefaultWeightKg:   getEnvFloat("DEFAULT_WEIGHT_KG", 75),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
