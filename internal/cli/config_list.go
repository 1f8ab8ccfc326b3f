package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/config"
	"github.com/Brian3647/nimi/internal/logging"
)

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", key, value)
			}
			return w.Flush()
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Show where seme reads its configuration, cache and logs",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTolerantConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(out, "Config file: %s\n", cfg.ConfigPath())
			cacheDir, err := cfg.CacheDir()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Cache directory: %s\n", cacheDir)
			if logFile := config.GetLogFile(); logFile != "" {
				logging.PrintLogPathMessage(out, logFile)
			}
			return nil
		},
	}
}
