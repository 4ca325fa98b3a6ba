package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	HealthWindow      time.Duration // Total window for post-start health polling
	HealthConnect     time.Duration // Per-probe HTTP connect timeout
	SSHDial           time.Duration // Timeout for establishing SSH connections
	SSHCommand        time.Duration // Timeout for a single remote command
	ServiceSettle     time.Duration // Grace period between service start and first probe
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - TRINITY_TIMEOUT_HEALTH_WINDOW (default: 90s)
//   - TRINITY_TIMEOUT_HEALTH_CONNECT (default: 5s)
//   - TRINITY_TIMEOUT_SSH_DIAL (default: 10s)
//   - TRINITY_TIMEOUT_SSH_COMMAND (default: 5m)
//   - TRINITY_TIMEOUT_SERVICE_SETTLE (default: 3s)
//   - TRINITY_RETRY_MAX_ATTEMPTS (default: 5)
//   - TRINITY_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		HealthWindow:      parseDuration("TRINITY_TIMEOUT_HEALTH_WINDOW", 90*time.Second),
		HealthConnect:     parseDuration("TRINITY_TIMEOUT_HEALTH_CONNECT", 5*time.Second),
		SSHDial:           parseDuration("TRINITY_TIMEOUT_SSH_DIAL", 10*time.Second),
		SSHCommand:        parseDuration("TRINITY_TIMEOUT_SSH_COMMAND", 5*time.Minute),
		ServiceSettle:     parseDuration("TRINITY_TIMEOUT_SERVICE_SETTLE", 3*time.Second),
		RetryMaxAttempts:  parseInt("TRINITY_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("TRINITY_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
