package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/config"
)

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: fmt.Sprintf(`Sets a configuration value and saves the file.

Valid keys: %s`, keyList()),
		Example: `  # Use German definitions by default
  seme config set language de

  # Keep dictionaries for a week
  seme config set cache.ttl_seconds 168h`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	// Reload from disk so environment overrides are not written to the file.
	cfg, err := loadFileOnly(config.GetGlobalConfig().ConfigPath())
	if err != nil {
		return err
	}

	if err = cfg.Set(key, value); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	saved, _ := cfg.Get(key)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, saved)
	return err
}

// loadFileOnly reads the config file at path over the defaults without
// applying environment overrides.
func loadFileOnly(path string) (*config.Config, error) {
	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err := config.MergeFileIfExists(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
