package host

import (
	"fmt"
	"os"

	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
)

// Factory function variables - can be replaced in tests.
var (
	statDir  = os.Stat
	makeDirs = os.MkdirAll
)

// DirectoriesStep lays out the managed directory tree and assigns it to
// the service user.
type DirectoriesStep struct{}

// NewDirectoriesStep creates the directory layout step.
func NewDirectoriesStep() *DirectoriesStep {
	return &DirectoriesStep{}
}

// Name implements provisioning.Step.
func (s *DirectoriesStep) Name() string { return "directories" }

// Check implements provisioning.Step.
func (s *DirectoriesStep) Check(ctx *provisioning.Context) (bool, error) {
	for _, dir := range ctx.Config.Paths.All() {
		info, err := statDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists but is not a directory", dir)
		}
	}
	return true, nil
}

// Apply implements provisioning.Step.
func (s *DirectoriesStep) Apply(ctx *provisioning.Context) error {
	users := system.NewUserManager(ctx.Runner)

	for _, dir := range ctx.Config.Paths.All() {
		if _, err := statDir(dir); err == nil {
			provisioning.LogResourceExists(ctx.Observer, s.Name(), "directory", dir)
			continue
		}
		if err := makeDirs(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		ctx.State.CreatedDirs = append(ctx.State.CreatedDirs, dir)
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "directory", dir)
	}

	// Data and log dirs are writable by the services; the rest stay root-owned.
	for _, dir := range []string{ctx.Config.Paths.DataDir, ctx.Config.Paths.LogDir} {
		if err := users.Chown(ctx, dir, ctx.Config.ServiceUser); err != nil {
			return err
		}
	}

	return nil
}
