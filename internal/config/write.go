package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the config to a YAML file with a descriptive header.
func WriteYAML(cfg *Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# Trinity deployment configuration
# Generated by trinityctl init on %s
#
# Edit this file and run 'trinityctl provision' to apply it locally,
# or 'trinityctl deploy <host>' to deploy to a remote host.
# File: %s
`, time.Now().Format("2006-01-02"), outputPath)
}
