package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
)

// saveAndRestoreProvisionFactories saves and restores provision factory functions.
func saveAndRestoreProvisionFactories(t *testing.T) {
	t.Helper()
	origNewRunner := newRunner
	origRunSteps := runSteps
	origIsTTY := isInteractiveTTY
	t.Cleanup(func() {
		newRunner = origNewRunner
		runSteps = origRunSteps
		isInteractiveTTY = origIsTTY
	})
}

func TestProvision_RunsPipelineAndPrintsSummary(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	newRunner = func() system.Runner { return system.NewMockRunner() }
	isInteractiveTTY = func() bool { return false }

	var gotSteps []string
	runSteps = func(ctx *provisioning.Context, steps []provisioning.Step) error {
		for _, s := range steps {
			gotSteps = append(gotSteps, s.Name())
		}
		ctx.State.InstalledPackages = []string{"nginx"}
		return nil
	}

	output := captureOutput(func() {
		require.NoError(t, Provision(context.Background(), writeTestConfig(t), false))
	})

	assert.Equal(t, []string{
		"preflight",
		"service-user",
		"directories",
		"packages",
		"render-configs",
		"firewall",
		"services",
		"health-gate",
	}, gotSteps)
	assert.Contains(t, output, "Trinity 1.2.3 deployed to staging")
}

func TestProvision_PipelineFailurePropagates(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	newRunner = func() system.Runner { return system.NewMockRunner() }
	runSteps = func(*provisioning.Context, []provisioning.Step) error {
		return errors.New("packages step failed")
	}

	err := Provision(context.Background(), writeTestConfig(t), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "packages step failed")
}

func TestProvision_ConfigError(t *testing.T) {
	saveAndRestoreProvisionFactories(t)

	err := Provision(context.Background(), "/nonexistent/trinity.yaml", false)
	require.Error(t, err)
}

func TestBuildPipeline_SkipHealthWiresTheGate(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte("version: 1.0.0\n"))
	require.NoError(t, err)
	ctx := provisioning.NewContext(context.Background(), cfg, system.NewMockRunner())

	steps := buildPipeline(cfg, true)
	last := steps[len(steps)-1]
	assert.Equal(t, "health-gate", last.Name())

	done, err := last.Check(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}
