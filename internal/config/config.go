package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, read from the environment.
type Config struct {
	// HTTP server
	Port string

	// Remote BlueMoon backend, e.g. http://localhost:8080/api
	APIBaseURL string

	// Local state database (session persistence)
	StateDBPath string

	// Logging
	LogLevel string

	// Notification bell refresh interval
	NotificationPoll time.Duration
}

// Load reads configuration from the environment, consulting a .env file
// first when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("BLUEMOON_PORT", "3000"),
		APIBaseURL:       getEnv("BLUEMOON_API_URL", "http://localhost:8080/api"),
		StateDBPath:      getEnv("BLUEMOON_STATE_DB", "bluemoon-admin.db"),
		LogLevel:         getEnv("BLUEMOON_LOG_LEVEL", "info"),
		NotificationPoll: getEnvDuration("BLUEMOON_NOTIFICATION_POLL", 30*time.Second),
	}
}

// Validate checks the configuration and returns an error describing every
// invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API base URL %q", c.APIBaseURL))
	}

	if c.StateDBPath == "" {
		problems = append(problems, "state database path must not be empty")
	}

	if c.NotificationPoll < time.Second {
		problems = append(problems, "notification poll interval must be at least 1s")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
