package provisioning

import (
	"context"

	"github.com/google/uuid"

	"github.com/synapticos/trinityctl/internal/config"
	"github.com/synapticos/trinityctl/internal/platform/system"
)

// Context wraps all dependencies and state needed for a provisioning step.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Runner   system.Runner
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context for a single run.
func NewContext(ctx context.Context, cfg *config.Config, runner system.Runner) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Runner:   runner,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}

// State holds the shared results of provisioning steps.
// It is progressively populated as each step completes and is read by
// subsequent steps and the final summary.
type State struct {
	// RunID uniquely identifies this provisioning run.
	RunID string

	// UserCreated is true when the service user was created in this run
	// (false when it already existed).
	UserCreated bool

	// CreatedDirs lists directories created in this run.
	CreatedDirs []string

	// InstalledPackages lists packages installed in this run.
	InstalledPackages []string

	// RenderedFiles lists configuration files written in this run.
	RenderedFiles []string

	// StartedServices lists units started in this run.
	StartedServices []string

	// SkippedSteps lists steps whose end-state already held.
	SkippedSteps []string

	// HealthEndpoint is the URL verified by the health gate, if any.
	HealthEndpoint string
}

// NewState creates an empty provisioning state with a fresh run ID.
func NewState() *State {
	return &State{
		RunID: uuid.NewString(),
	}
}
