package services

import (
	"fmt"
	"time"

	"github.com/synapticos/trinityctl/internal/healthcheck"
	"github.com/synapticos/trinityctl/internal/provisioning"
)

// healthWaiter is the part of the prober the health gate uses.
type healthWaiter interface {
	WaitHealthy(ctx *provisioning.Context, url string) error
}

// Factory function variables - can be replaced in tests.
var (
	newHealthWaiter = func(ctx *provisioning.Context) healthWaiter {
		return proberWaiter{prober: healthcheck.NewProber(ctx.Timeouts.HealthConnect)}
	}
	sleep = time.Sleep
)

type proberWaiter struct {
	prober *healthcheck.Prober
}

func (w proberWaiter) WaitHealthy(ctx *provisioning.Context, url string) error {
	return w.prober.WaitHealthy(ctx, url, ctx.Timeouts.HealthWindow, ctx.Timeouts.RetryInitialDelay)
}

// HealthGateStep blocks the run until the deployed stack answers its health
// endpoint through the reverse proxy. A failed gate fails the run; Skip
// turns the gate off for hosts where the proxy port is not reachable from
// the provisioning session.
type HealthGateStep struct {
	// Skip disables the gate entirely.
	Skip bool
}

// NewHealthGateStep creates the post-start health gate.
func NewHealthGateStep(skip bool) *HealthGateStep {
	return &HealthGateStep{Skip: skip}
}

// Name implements provisioning.Step.
func (s *HealthGateStep) Name() string { return "health-gate" }

// Check implements provisioning.Step.
func (s *HealthGateStep) Check(ctx *provisioning.Context) (bool, error) {
	if s.Skip {
		ctx.Observer.Printf("Health gate skipped by request")
		return true, nil
	}
	return false, nil
}

// Apply implements provisioning.Step.
func (s *HealthGateStep) Apply(ctx *provisioning.Context) error {
	url := healthURL(ctx)
	ctx.State.HealthEndpoint = url

	// Give the units a moment before the first probe; a probe against a
	// half-started listener burns a backoff slot for nothing.
	if ctx.Timeouts.ServiceSettle > 0 {
		sleep(ctx.Timeouts.ServiceSettle)
	}

	ctx.Observer.Printf("Waiting up to %v for %s", ctx.Timeouts.HealthWindow, url)
	if err := newHealthWaiter(ctx).WaitHealthy(ctx, url); err != nil {
		return fmt.Errorf("health gate failed: %w", err)
	}

	provisioning.LogResourceCreated(ctx.Observer, s.Name(), "endpoint", url)
	return nil
}

// healthURL is the stack health endpoint through the local reverse proxy.
func healthURL(ctx *provisioning.Context) string {
	return fmt.Sprintf("http://127.0.0.1:%d/health", ctx.Config.API.ProxyPort)
}
