package system

import (
	"context"
	"fmt"
	"strings"
)

// PackageManager installs OS packages through apt.
type PackageManager struct {
	runner Runner
}

// NewPackageManager creates a package manager backed by the given runner.
func NewPackageManager(runner Runner) *PackageManager {
	return &PackageManager{runner: runner}
}

// Installed reports whether a single package is installed.
func (p *PackageManager) Installed(ctx context.Context, pkg string) (bool, error) {
	output, err := p.runner.Run(ctx, "dpkg-query", "-W", "-f=${Status}", pkg)
	if err != nil {
		// dpkg-query exits non-zero for unknown packages
		return false, nil
	}
	return strings.Contains(output, "install ok installed"), nil
}

// Missing filters the given package list down to packages not yet installed.
func (p *PackageManager) Missing(ctx context.Context, packages []string) ([]string, error) {
	var missing []string
	for _, pkg := range packages {
		installed, err := p.Installed(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to query package %s: %w", pkg, err)
		}
		if !installed {
			missing = append(missing, pkg)
		}
	}
	return missing, nil
}

// Install installs the given packages non-interactively.
func (p *PackageManager) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	args := append([]string{"install", "-y", "--no-install-recommends"}, packages...)
	if output, err := p.runner.Run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("apt-get install failed: %w, output: %s", err, output)
	}
	return nil
}

// UpdateIndex refreshes the apt package index.
func (p *PackageManager) UpdateIndex(ctx context.Context) error {
	if output, err := p.runner.Run(ctx, "apt-get", "update", "-q"); err != nil {
		return fmt.Errorf("apt-get update failed: %w, output: %s", err, output)
	}
	return nil
}
