package handlers

import (
	"context"
	"fmt"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
	"github.com/synapticos/trinityctl/internal/provisioning/configs"
	"github.com/synapticos/trinityctl/internal/provisioning/host"
	"github.com/synapticos/trinityctl/internal/provisioning/services"
	"github.com/synapticos/trinityctl/internal/ui"
)

// Factory function variables for provision - can be replaced in tests.
var (
	// newRunner creates the command runner for the local host.
	newRunner = func() system.Runner {
		return system.NewExecRunner()
	}

	// runSteps executes the provisioning pipeline.
	runSteps = provisioning.RunSteps

	// isInteractiveTTY reports whether output should be styled.
	isInteractiveTTY = ui.IsInteractiveTTY
)

// Provision runs the full provisioning pipeline on the local host.
//
// The pipeline is ordered and fail-fast: preflight checks, service account,
// directory layout, OS packages, rendered configuration, firewall, service
// start, and the health gate. Steps whose end state already holds are
// skipped, so re-runs only apply what changed.
func Provision(ctx context.Context, configPath string, skipHealth bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, cfg, newRunner())
	steps := buildPipeline(cfg, skipHealth)

	if err := runSteps(pctx, steps); err != nil {
		return err
	}

	fmt.Print(ui.Summary{
		Environment: cfg.Environment,
		Version:     cfg.Version,
		State:       pctx.State,
		Styled:      isInteractiveTTY(),
	}.Render())

	return nil
}

// buildPipeline assembles the ordered step list for a provisioning run.
func buildPipeline(_ *config.Config, skipHealth bool) []provisioning.Step {
	return []provisioning.Step{
		host.NewPreflightStep(),
		host.NewUserStep(),
		host.NewDirectoriesStep(),
		host.NewPackagesStep(),
		configs.NewRenderStep(),
		host.NewFirewallStep(),
		services.NewEnableStartStep(),
		services.NewHealthGateStep(skipHealth),
	}
}
