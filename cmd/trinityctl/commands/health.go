package commands

import (
	"github.com/spf13/cobra"

	"github.com/synapticos/trinityctl/cmd/trinityctl/handlers"
)

// Health returns the command for checking the deployed stack's HTTP surface.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: auto-detect trinity.yaml)
//	--watch, -w: Re-probe every 5 seconds
//	--json: Output machine-readable JSON
func Health() *cobra.Command {
	var (
		configPath string
		watch      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe the deployed stack's health endpoints",
		Long: `Probe the HTTP surface of a deployed Trinity stack.

Each endpoint is probed once: the proxied health endpoint, the status
endpoint, and the consciousness state endpoint. With --watch the probes
repeat every 5 seconds until interrupted.

Examples:
  # One-shot health check
  trinityctl health

  # Watch mode
  trinityctl health --watch

  # JSON for scripting
  trinityctl health --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Health(cmd.Context(), configPath, watch, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trinity.yaml)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-probe every 5 seconds")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")

	return cmd
}
