package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$SEME_HOME/config.yaml, or <user config dir>/seme/config.yaml when SEME_HOME
is unset. Use --config to write somewhere else.`,
		Example: `  # Create the configuration file
  seme config init

  # Create configuration, overwriting existing
  seme config init --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerantConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path := config.GetGlobalConfig().ConfigPath()
	if path == "" {
		return errors.New("cannot determine configuration path; set SEME_HOME or pass --config")
	}

	if flagPath, _ := cmd.Flags().GetString("config"); flagPath == "" {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	// Defaults only: values from the environment are not persisted.
	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration initialized successfully\n")
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", path)
	return nil
}
