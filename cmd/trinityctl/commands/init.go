package commands

import (
	"github.com/spf13/cobra"

	"github.com/synapticos/trinityctl/cmd/trinityctl/handlers"
)

// Init returns the command for interactively creating a deployment configuration.
//
// This command guides users through creating a trinity.yaml using an
// interactive wizard.
//
// Flags:
//
//	--output, -o: Path to output file (default "trinity.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

This command guides you through configuring a Trinity deployment
step by step. It will ask about:

  - Deployment identity (environment name and release version)
  - Deploy target (optional remote host and API port)

Everything else gets a sensible default that can be edited in the
generated YAML afterwards.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "trinity.yaml", "Output file path")

	return cmd
}
