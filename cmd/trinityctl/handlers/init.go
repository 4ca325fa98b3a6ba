package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/synapticos/trinityctl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("trinityctl - SynapticOS Trinity deployment")
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println("Everything can be edited in the generated YAML afterwards.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Environment:  %s\n", cfg.Environment)
	fmt.Printf("  Version:      %s\n", cfg.Version)
	fmt.Printf("  Install dir:  %s\n", cfg.Paths.InstallDir)
	fmt.Printf("  API port:     %d (proxied on %d)\n", cfg.API.Port, cfg.API.ProxyPort)
	if cfg.Host.Address != "" {
		fmt.Printf("  Deploy host:  %s\n", cfg.Host.Address)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	if cfg.Host.Address != "" {
		fmt.Println("  2. Deploy to the configured host:")
		fmt.Println("     trinityctl deploy")
	} else {
		fmt.Println("  2. Provision this host:")
		fmt.Println("     sudo trinityctl provision")
	}
	fmt.Println()
}
