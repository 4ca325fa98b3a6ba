package commands

import (
	"github.com/spf13/cobra"

	"github.com/synapticos/trinityctl/cmd/trinityctl/handlers"
)

// Doctor returns the command for diagnosing a Trinity deployment.
//
// Doctor inspects the host state the provisioning pipeline manages: the
// service user, directories, packages, rendered configs, unit states,
// firewall, and the HTTP surface.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: auto-detect trinity.yaml)
//	--json: Output machine-readable JSON
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the Trinity deployment on this host",
		Long: `Diagnose the Trinity deployment on the local host.

Doctor checks everything the provisioning pipeline manages and reports
what is missing or unhealthy: service account, directory layout, OS
packages, rendered configuration files, systemd unit states, firewall
status, and the stack's HTTP endpoints.

Examples:
  # Human-readable report
  trinityctl doctor

  # JSON for scripting
  trinityctl doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trinity.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")

	return cmd
}
