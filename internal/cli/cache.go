package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/cache"
	"github.com/Brian3647/nimi/internal/config"
)

// newCacheCmd creates the cache command group.
func newCacheCmd(tty TTY) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the dictionary cache",
		Long: `Dictionary documents are cached per language code under the cache directory
and reused until they are older than the configured TTL. Entries are never
removed automatically; use "seme cache clear" to delete them.`,
	}
	cmd.AddCommand(newCachePathCmd(), newCacheListCmd(), newCacheClearCmd(tty))
	return cmd
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := config.GetGlobalConfig().CacheDir()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), root)
			return err
		},
	}
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached languages with their age and freshness",
		Args:  cobra.NoArgs,
		Example: `  # Show cached dictionaries
  seme cache list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheList(cmd)
		},
	}
}

func runCacheList(cmd *cobra.Command) error {
	cfg := config.GetGlobalConfig()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cache is empty (%s)\n", store.Root())
		return err
	}

	now := store.Now()
	ttl := config.GetCacheTTLSeconds()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LANGUAGE\tSIZE\tAGE\tSTATUS")
	for _, entry := range entries {
		status := "expired"
		if cache.IsFresh(entry.ModTime, now, ttl) {
			status = "fresh"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Key, formatSize(entry.Size), cache.FormatDuration(now.Sub(entry.ModTime)), status)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nTTL: %s\n", cache.FormatDuration(cache.TTLDuration(ttl)))
	return err
}

func newCacheClearCmd(tty TTY) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached dictionary",
		Long: `Deletes every cached dictionary. On a terminal you are asked to confirm
unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClear(cmd, !yes && tty.stdin())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runCacheClear(cmd *cobra.Command, confirm bool) error {
	store, err := newStore(config.GetGlobalConfig())
	if err != nil {
		return err
	}

	if confirm {
		entries, listErr := store.List()
		if listErr != nil {
			return listErr
		}
		if len(entries) > 0 {
			question := fmt.Sprintf("Remove %d cached %s from %s?",
				len(entries), pluralize(len(entries), "dictionary", "dictionaries"), store.Root())
			result := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), question)
			if !result.Accepted {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return err
			}
		}
	}

	removed, err := store.Clear()
	if err != nil {
		return err
	}
	logger.Debug().Int("removed", removed).Str("root", store.Root()).Msg("cache cleared")
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached %s\n", removed, pluralize(removed, "dictionary", "dictionaries"))
	return err
}

const (
	kib = 1 << 10
	mib = 1 << 20
)

// formatSize renders a byte count as B, KiB or MiB.
func formatSize(n int64) string {
	switch {
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
