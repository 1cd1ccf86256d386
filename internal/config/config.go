// Package config loads host-adapter settings from environment variables and
// optional .env files. The qualifier core itself takes no configuration;
// everything here concerns the process hosting it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the host-adapter settings.
type Config struct {
	// Server bind address.
	Host string
	Port string

	// MaxInputBytes caps the size of input documents accepted over HTTP.
	// The core performs bounded linear scans, so the cap is a defensive
	// courtesy for the host, not a correctness requirement. Zero disables it.
	MaxInputBytes int

	// Debug enables debug-level request logging.
	Debug bool
}

// Load reads configuration from the environment, after loading the first
// .env file found in ./.env or ~/.aro/plugin.env.
func Load() (*Config, error) {
	locations := []string{
		".env",
		filepath.Join(os.Getenv("HOME"), ".aro", "plugin.env"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			if err := godotenv.Overload(loc); err == nil {
				break
			}
		}
	}

	cfg := &Config{
		Host:  getEnvOrDefault("ARO_PLUGIN_HOST", "127.0.0.1"),
		Port:  getEnvOrDefault("ARO_PLUGIN_PORT", "8701"),
		Debug: getEnvAsBoolOrDefault("ARO_PLUGIN_DEBUG", false),
	}

	raw := getEnvOrDefault("ARO_PLUGIN_MAX_INPUT", "1048576")
	maxInput, err := strconv.Atoi(raw)
	if err != nil || maxInput < 0 {
		return nil, fmt.Errorf("ARO_PLUGIN_MAX_INPUT must be a non-negative integer, got %q", raw)
	}
	cfg.MaxInputBytes = maxInput

	return cfg, nil
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
