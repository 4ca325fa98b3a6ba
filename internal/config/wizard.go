package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers from the interactive init wizard.
type WizardResult struct {
	Environment string
	Version     string
	HostAddress string
	APIPort     int
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("deployment identity: %w", err)
	}

	if err := runTargetGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("deploy target: %w", err)
	}

	return result, nil
}

// runIdentityGroup prompts for environment name and release version.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Environment Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder("production").
				Value(&result.Environment).
				Validate(validateEnvironmentName),
			huh.NewInput().
				Title("Release Version").
				Description("Version string recorded in the runtime config").
				Placeholder("1.0.0").
				Value(&result.Version).
				Validate(validateNotEmpty("version")),
		).Title("Deployment Identity"),
	).RunWithContext(ctx)
}

// runTargetGroup prompts for the remote host and API port.
func runTargetGroup(ctx context.Context, result *WizardResult) error {
	portInput := strconv.Itoa(DefaultAPIPort)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target Host (Optional)").
				Description("Hostname or IP for remote deploys. Leave empty for local provisioning only.").
				Placeholder("10.0.0.5 (or leave empty)").
				Value(&result.HostAddress),
			huh.NewInput().
				Title("API Port").
				Description("Local port the Trinity API binds to").
				Value(&portInput).
				Validate(validatePort),
		).Title("Deploy Target"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.APIPort, _ = strconv.Atoi(portInput)
	return nil
}

// ToConfig converts wizard answers into a full config with defaults applied.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Environment: r.Environment,
		Version:     r.Version,
		Host: HostConfig{
			Address: r.HostAddress,
		},
		API: APIConfig{
			Port: r.APIPort,
		},
	}
	applyDefaults(cfg)
	return cfg
}

func validateEnvironmentName(s string) error {
	if !environmentRegex.MatchString(s) {
		return fmt.Errorf("must be 1-32 lowercase alphanumeric characters or hyphens")
	}
	return nil
}

func validateNotEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}
