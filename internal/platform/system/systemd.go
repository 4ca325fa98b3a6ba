package system

import (
	"context"
	"fmt"
	"strings"
)

// ServiceManager controls systemd units through systemctl.
type ServiceManager struct {
	runner Runner
}

// NewServiceManager creates a service manager backed by the given runner.
func NewServiceManager(runner Runner) *ServiceManager {
	return &ServiceManager{runner: runner}
}

// DaemonReload reloads systemd unit definitions.
func (s *ServiceManager) DaemonReload(ctx context.Context) error {
	if output, err := s.runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("daemon-reload failed: %w, output: %s", err, output)
	}
	return nil
}

// Enable marks a unit for start at boot.
func (s *ServiceManager) Enable(ctx context.Context, unit string) error {
	if output, err := s.runner.Run(ctx, "systemctl", "enable", unit); err != nil {
		return fmt.Errorf("failed to enable %s: %w, output: %s", unit, err, output)
	}
	return nil
}

// Restart restarts a unit.
func (s *ServiceManager) Restart(ctx context.Context, unit string) error {
	if output, err := s.runner.Run(ctx, "systemctl", "restart", unit); err != nil {
		return fmt.Errorf("failed to restart %s: %w, output: %s", unit, err, output)
	}
	return nil
}

// IsActive reports whether a unit is currently active.
func (s *ServiceManager) IsActive(ctx context.Context, unit string) (bool, error) {
	output, err := s.runner.Run(ctx, "systemctl", "is-active", unit)
	if err == nil {
		return strings.TrimSpace(output) == "active", nil
	}

	// is-active exits non-zero for any non-active state; only treat
	// recognized states as a clean "not active" answer.
	switch strings.TrimSpace(output) {
	case "inactive", "failed", "activating", "deactivating", "unknown":
		return false, nil
	}
	return false, fmt.Errorf("failed to query unit %s: %w", unit, err)
}

// IsEnabled reports whether a unit is enabled for boot.
func (s *ServiceManager) IsEnabled(ctx context.Context, unit string) (bool, error) {
	output, err := s.runner.Run(ctx, "systemctl", "is-enabled", unit)
	if err == nil {
		return strings.TrimSpace(output) == "enabled", nil
	}
	switch strings.TrimSpace(output) {
	case "disabled", "static", "masked", "not-found":
		return false, nil
	}
	return false, fmt.Errorf("failed to query unit %s: %w", unit, err)
}
