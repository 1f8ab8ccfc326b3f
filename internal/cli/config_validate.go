package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration file and SEME_* environment variables and checks the
result: language code, API URL, timeout and logging settings.`,
		Example: `  # Validate current configuration
  seme config validate

  # Validate and show detailed information
  seme config validate --verbose`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerantConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	// Load again so syntax errors are reported instead of masked by defaults.
	cfg, err := config.Load(config.GetGlobalConfig().ConfigPath())
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Configuration is valid")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Configuration details:")
	_, _ = fmt.Fprintf(out, "  Config file: %s\n", cfg.ConfigPath())
	_, _ = fmt.Fprintf(out, "  Language: %s\n", cfg.Language)
	_, _ = fmt.Fprintf(out, "  Cache TTL: %d seconds\n", cfg.Cache.TTLSeconds)
	_, _ = fmt.Fprintf(out, "  API: %s (timeout %ds)\n", cfg.API.BaseURL, cfg.API.TimeoutSeconds)
	_, _ = fmt.Fprintf(out, "  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		_, _ = fmt.Fprintf(out, "  Log file: %s\n", cfg.Logging.File)
	}
}
