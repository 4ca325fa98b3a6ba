// Package system abstracts host-level operations behind a command runner.
//
// Provisioning steps never shell out directly; they go through the [Runner]
// interface so that every host mutation can be recorded and replayed in tests.
// Thin wrappers (apt, systemd, users) translate domain operations into
// commands executed by the runner.
package system

import "context"

// Runner executes a command on the host and returns its combined output.
type Runner interface {
	// Run executes name with args and returns combined stdout/stderr.
	// A non-zero exit status is returned as an error alongside the output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}
