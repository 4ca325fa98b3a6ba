package host

import (
	"fmt"
	"strings"

	"github.com/synapticos/trinityctl/internal/provisioning"
)

// FirewallStep opens the public ports through ufw and enables it.
type FirewallStep struct{}

// NewFirewallStep creates the firewall step.
func NewFirewallStep() *FirewallStep {
	return &FirewallStep{}
}

// Name implements provisioning.Step.
func (s *FirewallStep) Name() string { return "firewall" }

// Check implements provisioning.Step.
func (s *FirewallStep) Check(ctx *provisioning.Context) (bool, error) {
	output, err := ctx.Runner.Run(ctx, "ufw", "status")
	if err != nil {
		// ufw not installed yet or not configured; the step will handle it
		return false, nil
	}
	if !strings.Contains(output, "Status: active") {
		return false, nil
	}
	for _, rule := range s.rules(ctx) {
		if !ruleAllowed(output, rule) {
			return false, nil
		}
	}
	return true, nil
}

// ruleAllowed reports whether a ufw status line carries the rule as its
// target. Whole-token comparison on the first column; a substring match
// would let 8080/tcp satisfy 80/tcp.
func ruleAllowed(output, rule string) bool {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == rule {
			return true
		}
	}
	return false
}

// Apply implements provisioning.Step.
func (s *FirewallStep) Apply(ctx *provisioning.Context) error {
	for _, rule := range s.rules(ctx) {
		if output, err := ctx.Runner.Run(ctx, "ufw", "allow", rule); err != nil {
			return fmt.Errorf("failed to allow %s: %w, output: %s", rule, err, output)
		}
	}

	// --force answers the interactive prompt; enable is idempotent
	if output, err := ctx.Runner.Run(ctx, "ufw", "--force", "enable"); err != nil {
		return fmt.Errorf("failed to enable ufw: %w, output: %s", err, output)
	}

	provisioning.LogResourceCreated(ctx.Observer, s.Name(), "firewall", "ufw")
	return nil
}

// rules returns the allow rules for this deployment.
func (s *FirewallStep) rules(ctx *provisioning.Context) []string {
	return []string{
		"OpenSSH",
		fmt.Sprintf("%d/tcp", ctx.Config.API.ProxyPort),
	}
}
