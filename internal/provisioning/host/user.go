package host

import (
	"fmt"

	"github.com/synapticos/trinityctl/internal/platform/system"
	"github.com/synapticos/trinityctl/internal/provisioning"
)

// UserStep ensures the dedicated service account exists.
type UserStep struct{}

// NewUserStep creates the service user step.
func NewUserStep() *UserStep {
	return &UserStep{}
}

// Name implements provisioning.Step.
func (s *UserStep) Name() string { return "service-user" }

// Check implements provisioning.Step.
func (s *UserStep) Check(ctx *provisioning.Context) (bool, error) {
	users := system.NewUserManager(ctx.Runner)
	exists, err := users.Exists(ctx, ctx.Config.ServiceUser)
	if err != nil {
		return false, err
	}
	if exists {
		provisioning.LogResourceExists(ctx.Observer, s.Name(), "user", ctx.Config.ServiceUser)
	}
	return exists, nil
}

// Apply implements provisioning.Step.
func (s *UserStep) Apply(ctx *provisioning.Context) error {
	users := system.NewUserManager(ctx.Runner)

	if err := users.CreateSystemUser(ctx, ctx.Config.ServiceUser, ctx.Config.Paths.InstallDir); err != nil {
		return fmt.Errorf("failed to create service user: %w", err)
	}

	ctx.State.UserCreated = true
	provisioning.LogResourceCreated(ctx.Observer, s.Name(), "user", ctx.Config.ServiceUser)
	return nil
}
