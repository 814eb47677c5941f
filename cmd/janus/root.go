package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "janus",
	Short: "Janus - tenant-aware edge router",
	Long: `Janus is a tenant-aware edge router for dual-environment deployments.

It sits in front of a dev and a stable origin and routes each tenant's
traffic to the environment the tenant is bound to, providing:
  - Tenant extraction from request hostnames under a base domain
  - Persistent tenant-to-environment bindings (memory, SQLite, Redis)
  - Automatic environment detection by probing both origins
  - A bearer-authenticated binding management API
  - Host-preserving reverse proxying with diagnostic headers`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
