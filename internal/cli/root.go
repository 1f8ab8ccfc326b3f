package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Brian3647/nimi/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// annotationTolerantConfig marks commands that still run when the config file
// cannot be loaded, falling back to defaults.
const annotationTolerantConfig = "seme/tolerant-config"

// TTY reports whether the standard streams are terminals. A nil check counts
// as not a terminal.
type TTY struct {
	Stdin  func() bool
	Stdout func() bool
}

func (t TTY) stdin() bool {
	return t.Stdin != nil && t.Stdin()
}

func (t TTY) stdout() bool {
	return t.Stdout != nil && t.Stdout()
}

// NewRootCmd creates the root Cobra command for the seme CLI.
// The root command itself looks up a word; cache, config and version are
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithTTY(ver, TTY{
		Stdin:  func() bool { return isTerminal(os.Stdin) },
		Stdout: func() bool { return isTerminal(os.Stdout) },
	})
}

// NewRootCmdWithTTY creates the root command with explicit terminal checks.
// Stdout decides whether JSON is indented; stdin whether destructive commands
// ask for confirmation.
func NewRootCmdWithTTY(ver string, tty TTY) *cobra.Command {
	var (
		logResult *logging.LogPathResult
		opts      = lookupOptions{tty: tty}
	)

	cmd := &cobra.Command{
		Use:   "seme [flags] <word>",
		Short: "Look up toki pona words",
		Long: `seme prints the definition of a toki pona word from the linku dictionary.

The full dictionary for a language is downloaded once and cached on disk; later
lookups are served from the cache until it is older than the configured TTL.

A word that collides with a subcommand name can be looked up after "--":
  seme -- cache`,
		Version:       ver,
		Example:       rootCmdExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.document {
				return cmd.Help()
			}
			if len(args) == 1 && opts.document {
				return fmt.Errorf("--document prints the whole dictionary and takes no word (got %q)", args[0])
			}
			if len(args) == 1 {
				opts.word = args[0]
			}
			return runLookup(cmd, &opts)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to the config file (default $SEME_HOME/config.yaml)")

	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "show the raw JSON record from the API")
	cmd.Flags().StringVarP(&opts.lang, "toki", "t", "", "language code used for definitions (default from config)")
	cmd.Flags().BoolVar(&opts.document, "document", false, "print the whole dictionary document for the language")
	cmd.Flags().StringVar(&opts.cacheTTL, "cache-ttl", "",
		"cache TTL as seconds or a duration such as 12h (overrides config file and env var)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore the cache and download the dictionary again")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "print JSON on a single line even on a terminal")
	cmd.MarkFlagsMutuallyExclusive("refresh", "cache-ttl")

	cmd.AddCommand(newCacheCmd(tty), newConfigCmd(), NewVersionCmd(ver))

	return cmd
}

const rootCmdExample = `  # Define a word using the configured language
  seme toki

  # Define a word in German
  seme -t de toki

  # Show the raw JSON record
  seme -j toki

  # Dump the whole Spanish dictionary document
  seme --document -t es

  # Bypass the cache for this lookup
  seme --refresh toki

  # Inspect the cache
  seme cache list`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(), NewConfigPathCmd(),
	)
	return cmd
}
