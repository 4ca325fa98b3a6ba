package host

import (
	"fmt"
	"strings"

	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
)

// PackagesStep installs the OS packages the stack requires. Only packages
// missing from the dpkg database are installed, so re-runs are no-ops.
type PackagesStep struct{}

// NewPackagesStep creates the package installation step.
func NewPackagesStep() *PackagesStep {
	return &PackagesStep{}
}

// Name implements provisioning.Step.
func (s *PackagesStep) Name() string { return "packages" }

// Check implements provisioning.Step.
func (s *PackagesStep) Check(ctx *provisioning.Context) (bool, error) {
	pm := system.NewPackageManager(ctx.Runner)
	missing, err := pm.Missing(ctx, ctx.Config.Packages)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// Apply implements provisioning.Step.
func (s *PackagesStep) Apply(ctx *provisioning.Context) error {
	pm := system.NewPackageManager(ctx.Runner)

	missing, err := pm.Missing(ctx, ctx.Config.Packages)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	ctx.Observer.Printf("Installing %d packages: %s", len(missing), strings.Join(missing, ", "))

	if err := pm.UpdateIndex(ctx); err != nil {
		return err
	}
	if err := pm.Install(ctx, missing); err != nil {
		return fmt.Errorf("package installation failed: %w", err)
	}

	ctx.State.InstalledPackages = append(ctx.State.InstalledPackages, missing...)
	for i, pkg := range missing {
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "package", pkg)
		ctx.Observer.Progress(s.Name(), i+1, len(missing))
	}
	return nil
}
