package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"mercator-hq/janus/pkg/config"
)

var validateFlags struct {
	env bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a Janus configuration file without starting the router.

The validate command checks that:
  - The file parses as YAML
  - Required fields are present (base domain, origin hosts)
  - Enumerated fields hold allowed values (environments, backends)
  - The dev and stable origins are distinct

Examples:
  # Validate the default config file
  janus validate

  # Validate a specific file
  janus validate --config /etc/janus/config.yaml

  # Validate with environment variable overrides applied
  janus validate --env`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.env, "env", false, "apply JANUS_* environment overrides before validating")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if validateFlags.env {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
	} else {
		cfg, err = config.LoadConfig(cfgFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("✓ Configuration valid: %s\n", cfgFile)
	fmt.Printf("  Base domain:         %s\n", cfg.Routing.BaseDomain)
	fmt.Printf("  Default environment: %s\n", cfg.Routing.DefaultEnvironment)
	fmt.Printf("  Dev origin:          %s\n", cfg.Origins.DevHost)
	fmt.Printf("  Stable origin:       %s\n", cfg.Origins.StableHost)
	fmt.Printf("  Bindings backend:    %s\n", cfg.Bindings.Backend)

	return nil
}
