// Package services contains the provisioning steps that bring the Trinity
// units online and gate the run on their health.
package services

import (
	"fmt"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
)

// EnableStartStep enables and starts the Trinity units and reloads nginx.
type EnableStartStep struct{}

// NewEnableStartStep creates the service start step.
func NewEnableStartStep() *EnableStartStep {
	return &EnableStartStep{}
}

// Name implements provisioning.Step.
func (s *EnableStartStep) Name() string { return "services" }

// Check implements provisioning.Step. The step is satisfied only when all
// units are already active AND no configuration changed this run; a config
// change means the services must pick it up.
func (s *EnableStartStep) Check(ctx *provisioning.Context) (bool, error) {
	if len(ctx.State.RenderedFiles) > 0 {
		return false, nil
	}

	sm := system.NewServiceManager(ctx.Runner)
	for _, service := range s.units(ctx) {
		active, err := sm.IsActive(ctx, service)
		if err != nil {
			return false, err
		}
		if !active {
			return false, nil
		}
	}
	return true, nil
}

// Apply implements provisioning.Step.
func (s *EnableStartStep) Apply(ctx *provisioning.Context) error {
	sm := system.NewServiceManager(ctx.Runner)

	if err := sm.DaemonReload(ctx); err != nil {
		return err
	}

	for _, service := range s.units(ctx) {
		if err := sm.Enable(ctx, service); err != nil {
			return err
		}
		if err := sm.Restart(ctx, service); err != nil {
			return fmt.Errorf("failed to start %s: %w", service, err)
		}
		ctx.State.StartedServices = append(ctx.State.StartedServices, service)
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "service", service)
	}

	return nil
}

// units returns every unit this step manages, proxy first so the Trinity
// services come up behind a configured front end.
func (s *EnableStartStep) units(ctx *provisioning.Context) []string {
	units := make([]string, 0, len(config.TrinityServices)+1)
	units = append(units, config.ServiceNginx)
	units = append(units, config.TrinityServices...)
	return units
}
