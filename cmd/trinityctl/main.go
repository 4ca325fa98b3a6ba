// Package main is the entry point for the trinityctl CLI.
//
// trinityctl provisions the SynapticOS Trinity AI stack onto Debian-family
// hosts. It lays out the service account and directory tree, installs OS
// packages, renders the runtime configuration, nginx site, and systemd
// units, starts the services, and gates the run on the stack's health
// endpoint. The same pipeline can be pushed to a remote host over SSH.
//
// Commands: init, provision, deploy, health, doctor, smoke.
//
// For detailed usage information, run:
//
//	trinityctl --help
package main

import (
	"fmt"
	"os"

	"github.com/synapticos/trinityctl/cmd/trinityctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
