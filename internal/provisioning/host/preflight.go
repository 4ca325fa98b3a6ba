// Package host contains the provisioning steps that mutate base host state:
// preflight checks, the service user, the directory layout, OS packages,
// and the firewall.
package host

import (
	"fmt"
	"os"

	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
	"github.com/synapticos/trinityctl/internal/util/prerequisites"
)

const gigabyte = 1 << 30

// Factory function variables - can be replaced in tests.
var (
	geteuid         = os.Geteuid
	freeDiskBytes   = system.FreeDiskBytes
	availableMemory = system.AvailableMemoryBytes
	checkHostTools  = prerequisites.CheckProvisioning
)

// PreflightStep verifies the host can be provisioned at all: elevated
// privilege, free disk, available memory, and required tools.
type PreflightStep struct{}

// NewPreflightStep creates the preflight step.
func NewPreflightStep() *PreflightStep {
	return &PreflightStep{}
}

// Name implements provisioning.Step.
func (s *PreflightStep) Name() string { return "preflight" }

// Check implements provisioning.Step. Preflight always runs; the checks
// themselves are the step.
func (s *PreflightStep) Check(ctx *provisioning.Context) (bool, error) {
	if !ctx.Config.PreflightEnabled() {
		ctx.Observer.Printf("Preflight checks disabled by configuration")
		return true, nil
	}
	return false, nil
}

// Apply implements provisioning.Step.
func (s *PreflightStep) Apply(ctx *provisioning.Context) error {
	if euid := geteuid(); euid != 0 {
		return fmt.Errorf("provisioning requires root privileges (running as uid %d)", euid)
	}

	minDisk := uint64(ctx.Config.Preflight.MinDiskGB) * gigabyte
	free, err := freeDiskBytes(ctx.Config.Paths.InstallDir)
	if err != nil {
		// Install dir may not exist yet; fall back to its volume root
		free, err = freeDiskBytes("/")
	}
	if err != nil {
		return fmt.Errorf("failed to check free disk space: %w", err)
	}
	if free < minDisk {
		return fmt.Errorf("insufficient disk space: %d GB free, %d GB required",
			free/gigabyte, ctx.Config.Preflight.MinDiskGB)
	}

	minMem := uint64(ctx.Config.Preflight.MinMemoryGB) * gigabyte
	avail, err := availableMemory()
	if err != nil {
		return fmt.Errorf("failed to check available memory: %w", err)
	}
	if avail < minMem {
		return fmt.Errorf("insufficient memory: %d MB available, %d GB required",
			avail/(1<<20), ctx.Config.Preflight.MinMemoryGB)
	}

	results := checkHostTools()
	for _, r := range results.Results {
		if r.Found {
			ctx.Observer.Printf("  Found %s (%s)", r.Tool.Name, r.Path)
		}
	}
	if err := results.Error(); err != nil {
		return fmt.Errorf("preflight tool check failed: %w", err)
	}

	return nil
}
