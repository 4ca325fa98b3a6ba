package system

import (
	"context"
	"os/exec"
	"strings"
)

// ExecRunner runs commands on the local host via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner that executes commands locally.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 - commands come from fixed step definitions, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	return strings.TrimRight(string(output), "\n"), err
}
