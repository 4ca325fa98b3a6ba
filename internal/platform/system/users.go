package system

import (
	"context"
	"fmt"
)

// UserManager creates and inspects system users.
type UserManager struct {
	runner Runner
}

// NewUserManager creates a user manager backed by the given runner.
func NewUserManager(runner Runner) *UserManager {
	return &UserManager{runner: runner}
}

// Exists reports whether the named user is present in the passwd database.
func (u *UserManager) Exists(ctx context.Context, name string) (bool, error) {
	_, err := u.runner.Run(ctx, "getent", "passwd", name)
	if err == nil {
		return true, nil
	}
	// getent exits 2 when the key is not found; any other failure
	// (binary missing, context canceled) must not read as "absent".
	if err.Error() == "exit status 2" {
		return false, nil
	}
	return false, fmt.Errorf("failed to query user %s: %w", name, err)
}

// CreateSystemUser creates a locked system account with the given home
// directory and no login shell.
func (u *UserManager) CreateSystemUser(ctx context.Context, name, home string) error {
	output, err := u.runner.Run(ctx, "useradd",
		"--system",
		"--home-dir", home,
		"--shell", "/usr/sbin/nologin",
		"--comment", "SynapticOS service account",
		name)
	if err != nil {
		return fmt.Errorf("useradd %s failed: %w, output: %s", name, err, output)
	}
	return nil
}

// Chown recursively assigns ownership of path to owner:owner.
func (u *UserManager) Chown(ctx context.Context, path, owner string) error {
	output, err := u.runner.Run(ctx, "chown", "-R", owner+":"+owner, path)
	if err != nil {
		return fmt.Errorf("chown %s failed: %w, output: %s", path, err, output)
	}
	return nil
}
