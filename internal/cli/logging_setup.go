package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/config"
	"github.com/Brian3647/nimi/internal/logging"
)

// baseLogger carries the trace ID; component loggers derive from it.
var baseLogger = zerolog.Nop() //nolint:gochecknoglobals // set once per invocation in setupLogging

// loadConfig resolves the configuration for cmd and installs it as the global
// config. Commands annotated with annotationTolerantConfig fall back to
// defaults when the file is unreadable.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if _, tolerant := cmd.Annotations[annotationTolerantConfig]; !tolerant {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using defaults\n", err)
		cfg = config.Default()
		if path != "" {
			cfg.SetConfigPath(path)
		}
	}

	config.SetGlobalConfig(cfg)
	return cfg, nil
}

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	logCfg.Caller = debug
	result := logging.NewLoggerWithPath(logCfg)
	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	baseLogger = result.Logger.With().Str("trace_id", traceID).Logger()
	logger = logging.ComponentLogger(baseLogger, "cli")
	config.SetLogger(logging.ComponentLogger(baseLogger, "config"))

	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("config", cfg.ConfigPath()).
		Bool("log_to_file", result.UsingFile).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult == nil || !logResult.UsingFile {
		return nil
	}
	// Loggers still referencing the file must not outlive it.
	baseLogger = zerolog.Nop()
	logger = zerolog.Nop()
	config.SetLogger(zerolog.Nop())
	return logResult.Close()
}
