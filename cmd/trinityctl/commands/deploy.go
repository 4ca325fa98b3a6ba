package commands

import (
	"github.com/spf13/cobra"

	"github.com/synapticos/trinityctl/cmd/trinityctl/handlers"
)

// Deploy returns the command for deploying the Trinity stack to a remote host.
//
// Deploy copies the trinityctl binary and the deployment configuration to
// the target over SSH and runs 'trinityctl provision' there. The remote
// host is the one configured under 'host:' in the config file.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: auto-detect trinity.yaml)
//	--key, -i: Path to the SSH private key (default: host.private_key_path from config)
//	--skip-health: Pass --skip-health to the remote provision run
func Deploy() *cobra.Command {
	var (
		configPath string
		keyPath    string
		skipHealth bool
	)

	cmd := &cobra.Command{
		Use:   "deploy [host]",
		Short: "Deploy the Trinity stack to a remote host",
		Long: `Deploy the Trinity stack to a remote host over SSH.

This command uploads the running trinityctl binary and the deployment
configuration to the target host, then executes 'trinityctl provision'
remotely. The remote run uses the same idempotent pipeline as local
provisioning.

The target is the positional host argument when given, otherwise the
host configured under 'host:' in the config file.

Examples:
  # Deploy to the host configured in trinity.yaml
  trinityctl deploy

  # Deploy to an explicit host with an explicit key
  trinityctl deploy 10.0.0.7 -i ~/.ssh/id_ed25519

  # Deploy without the remote health gate
  trinityctl deploy --skip-health`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostOverride := ""
			if len(args) == 1 {
				hostOverride = args[0]
			}
			return handlers.Deploy(cmd.Context(), configPath, hostOverride, keyPath, skipHealth)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trinity.yaml)")
	cmd.Flags().StringVarP(&keyPath, "key", "i", "", "Path to SSH private key (default: from config)")
	cmd.Flags().BoolVar(&skipHealth, "skip-health", false, "Skip the remote health gate")

	return cmd
}
