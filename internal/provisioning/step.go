// Package provisioning provides the step sequencer that drives host setup.
//
// A provisioning run is an ordered list of [Step] values applied by
// [RunSteps]. Each step declares its desired end-state through Check and
// reaches it through Apply; the runner skips steps whose end-state already
// holds and aborts the whole run on the first failure. No compensation or
// rollback is attempted — a failed run is re-run after the cause is fixed,
// and idempotent steps make that safe.
//
// Concrete steps live in focused subpackages:
//   - host/ — preflight checks, system user, directories, packages, firewall
//   - configs/ — rendered runtime config, nginx site, and systemd units
//   - services/ — unit enablement, service start, health gate
package provisioning

// Step is a single idempotent unit of host configuration.
type Step interface {
	// Name returns the human-readable name of this step.
	Name() string

	// Check reports whether the desired end-state already holds.
	// Steps that cannot cheaply decide return false and rely on an
	// idempotent Apply.
	Check(ctx *Context) (bool, error)

	// Apply performs the host mutation for this step.
	Apply(ctx *Context) error
}
