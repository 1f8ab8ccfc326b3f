package config

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Brian3647/nimi/internal/logging"
)

// Logger is the package logger used before the CLI has configured logging.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logMu protects concurrent access to Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// SetLogger replaces the package logger.
func SetLogger(logger zerolog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	Logger = logger
}

// GetLogger returns the package logger.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// Config loading can log before the CLI sets up logging; default to warnings on stderr.
//
//nolint:gochecknoinits // intentional: package-level logger must be initialized before use
func init() {
	Logger = logging.NewLogger(os.Stderr, logging.Config{Level: DefaultLogLevel})
}

// ToLoggingConfig converts LoggingConfig to logging.Config.
//
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global configuration.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
