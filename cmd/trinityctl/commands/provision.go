package commands

import (
	"github.com/spf13/cobra"

	"github.com/synapticos/trinityctl/cmd/trinityctl/handlers"
)

// Provision returns the command for provisioning the Trinity stack on the
// local host.
//
// The provisioning pipeline is idempotent: steps whose end state already
// holds are skipped, and re-running after a failure resumes where the
// previous run stopped.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: auto-detect trinity.yaml)
//	--skip-health: Do not gate the run on the stack health endpoint
func Provision() *cobra.Command {
	var (
		configPath string
		skipHealth bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the Trinity stack on this host",
		Long: `Provision the Trinity stack on the local host.

This command runs the full provisioning pipeline: preflight checks,
service account, directory layout, OS packages, configuration files,
firewall rules, service start, and a health gate against the deployed
stack's /health endpoint.

The pipeline is idempotent. Steps whose end state already holds are
skipped, so re-running after a config change only applies the change.

If no config file is specified, it looks for trinity.yaml in the current
directory. Use 'trinityctl init' to create one.

Examples:
  # Provision using trinity.yaml in current directory
  sudo trinityctl provision

  # Provision using a specific config file
  sudo trinityctl provision -c production.yaml

  # Provision without waiting for the health endpoint
  sudo trinityctl provision --skip-health`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, skipHealth)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trinity.yaml)")
	cmd.Flags().BoolVar(&skipHealth, "skip-health", false, "Skip the post-start health gate")

	return cmd
}
