// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"fmt"

	"github.com/synapticos/trinityctl/internal/config"
)

// Factory function variables shared across handlers - can be replaced in tests.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile
)

// loadConfig resolves and loads the deployment configuration. An empty path
// auto-detects trinity.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file specified and %w - run 'trinityctl init' to create one", err)
		}
		configPath = found
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// endpointURLs returns the HTTP surface of a deployed stack, proxied
// endpoints first.
func endpointURLs(cfg *config.Config) []string {
	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.API.ProxyPort)
	return []string{
		base + "/health",
		base + "/status",
		base + "/consciousness/state",
	}
}
