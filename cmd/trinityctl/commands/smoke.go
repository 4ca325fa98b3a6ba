package commands

import (
	"github.com/spf13/cobra"

	"github.com/synapticos/trinityctl/cmd/trinityctl/handlers"
)

// Smoke returns the command for load-probing the deployed stack.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML (default: auto-detect trinity.yaml)
//	--requests, -n: Total number of probes (default 20)
//	--concurrency: Number of concurrent probes (default 4)
func Smoke() *cobra.Command {
	var (
		configPath  string
		requests    int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run a concurrent smoke test against the health endpoint",
		Long: `Run a concurrent smoke test against the deployed stack.

The health endpoint is probed N times with bounded concurrency and the
latency distribution is reported. A non-zero failure count fails the
command.

Examples:
  # Default smoke run (20 requests, 4 concurrent)
  trinityctl smoke

  # Heavier run
  trinityctl smoke -n 200 --concurrency 16`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Smoke(cmd.Context(), configPath, requests, concurrency)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: trinity.yaml)")
	cmd.Flags().IntVarP(&requests, "requests", "n", 20, "Total number of probes")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of concurrent probes")

	return cmd
}
