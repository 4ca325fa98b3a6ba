package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// environmentRegex validates environment names: 1-32 lowercase alphanumeric with hyphens.
var environmentRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	var errs []string

	if !environmentRegex.MatchString(c.Environment) {
		errs = append(errs, fmt.Sprintf("environment %q must be 1-32 lowercase alphanumeric characters or hyphens", c.Environment))
	}
	if c.Version == "" {
		errs = append(errs, "version must be set")
	}
	if c.ServiceUser == "" {
		errs = append(errs, "service_user must be set")
	}

	for _, dir := range c.Paths.All() {
		if !filepath.IsAbs(dir) {
			errs = append(errs, fmt.Sprintf("path %q must be absolute", dir))
		}
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, fmt.Sprintf("api port %d out of range", c.API.Port))
	}
	if c.API.ProxyPort < 1 || c.API.ProxyPort > 65535 {
		errs = append(errs, fmt.Sprintf("proxy port %d out of range", c.API.ProxyPort))
	}
	if c.API.Port == c.API.ProxyPort {
		errs = append(errs, "api port and proxy port must differ")
	}

	if c.Orchestrator.MaxWorkers < 0 {
		errs = append(errs, "max_workers must not be negative")
	}
	if c.Orchestrator.CoherenceThreshold < 0 || c.Orchestrator.CoherenceThreshold > 1 {
		errs = append(errs, "coherence_threshold must be in [0,1]")
	}
	if c.Orchestrator.NeuralPlasticity < 0 || c.Orchestrator.NeuralPlasticity > 1 {
		errs = append(errs, "neural_plasticity must be in [0,1]")
	}
	if c.Orchestrator.RetentionDays < 1 {
		errs = append(errs, "retention_days must be at least 1")
	}

	if c.Host.Port < 0 || c.Host.Port > 65535 {
		errs = append(errs, fmt.Sprintf("ssh port %d out of range", c.Host.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
