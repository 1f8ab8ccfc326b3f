// Package config loads and saves the seme configuration file.
//
// Settings are resolved in increasing order of precedence: built-in defaults,
// the YAML config file, SEME_* environment variables and finally CLI flags
// (applied by the cli package).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Brian3647/nimi/internal/cache"
	"github.com/Brian3647/nimi/internal/linku"
)

// Defaults.
const (
	DefaultLanguage       = "en"
	DefaultTimeoutSeconds = 30
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"

	configFileName = "config.yaml"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome      = "SEME_HOME"
	EnvLanguage  = "SEME_LANGUAGE"
	EnvAPIURL    = "SEME_API_URL"
	EnvLogLevel  = "SEME_LOG_LEVEL"
	EnvLogFormat = "SEME_LOG_FORMAT"
	EnvNoColor   = "NO_COLOR"
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the full seme configuration.
type Config struct {
	// Language is the default language code for definitions.
	Language string `yaml:"language"`

	Cache   CacheConfig   `yaml:"cache"`
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	// Dir overrides the cache directory (default: <user cache dir>/seme).
	Dir string `yaml:"dir,omitempty"`

	// TTLSeconds is how long a cached document stays fresh. 0 disables reuse.
	TTLSeconds uint64 `yaml:"ttl_seconds"`
}

// APIConfig points at the word API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color bool `yaml:"color"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration, bound to the default config path
// when it can be determined.
func Default() *Config {
	cfg := &Config{
		Language: DefaultLanguage,
		Cache: CacheConfig{
			TTLSeconds: cache.DefaultTTLSeconds,
		},
		API: APIConfig{
			BaseURL:        linku.DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Output: OutputConfig{Color: true},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
	if path, err := DefaultConfigPath(); err == nil {
		cfg.configPath = path
	}
	return cfg
}

// New loads the configuration from the default path. Problems with the file
// are logged and the defaults (plus environment) are used instead.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		logger := GetLogger()
		logger.Warn().Err(err).Msg("failed to load configuration, using defaults")
		cfg = Default()
		_ = cfg.ApplyEnv()
	}
	return cfg
}

// Load reads the config file at path (the default path when empty) on top of
// the defaults and applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		cfg.configPath = path
	}

	if err := MergeFileIfExists(cfg, cfg.configPath); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFileIfExists merges the YAML file at path onto cfg. An empty path or a
// missing file leaves cfg unchanged.
func MergeFileIfExists(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return ShallowMergeYAML(cfg, path)
}

// ApplyEnv overlays SEME_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := cache.GetCacheDirFromEnv(); v != "" {
		c.Cache.Dir = v
	}
	ttl, ok, err := cache.TTLFromEnv()
	if err != nil {
		return err
	}
	if ok {
		c.Cache.TTLSeconds = ttl
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if os.Getenv(EnvNoColor) != "" {
		c.Output.Color = false
	}
	return nil
}

// ConfigPath returns the file this configuration is bound to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath binds the configuration to path for Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// CacheDir returns the configured cache directory or the platform default.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cache.DefaultRoot()
}

// Validate checks the configuration for values the CLI cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if err := ValidateLanguage(c.Language); err != nil {
		errs = append(errs, err)
	}

	if u, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL))
	}

	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds must be > 0, got %d", c.API.TimeoutSeconds))
	}

	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, fmt.Errorf("logging.level: %w", err))
		}
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ValidateLanguage rejects empty codes and codes containing whitespace or
// control characters.
func ValidateLanguage(code string) error {
	if code == "" {
		return errors.New("language must not be empty")
	}
	for _, r := range code {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("language %q contains whitespace or control characters", code)
		}
	}
	return nil
}

// Save writes the configuration as YAML to its config path.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	dir := filepath.Dir(c.configPath)
	if mkdirErr := os.MkdirAll(dir, 0o700); mkdirErr != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, mkdirErr)
	}

	tmpPath := c.configPath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing configuration: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, c.configPath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing configuration: %w", renameErr)
	}
	return nil
}

// Keys lists the dotted keys accepted by Get and Set.
func Keys() []string {
	return []string{
		"language",
		"cache.dir",
		"cache.ttl_seconds",
		"api.base_url",
		"api.timeout_seconds",
		"output.color",
		"logging.level",
		"logging.format",
		"logging.file",
	}
}

// Get returns the value of a dotted key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "language":
		return c.Language, nil
	case "cache.dir":
		return c.Cache.Dir, nil
	case "cache.ttl_seconds":
		return strconv.FormatUint(c.Cache.TTLSeconds, 10), nil
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_seconds":
		return strconv.Itoa(c.API.TimeoutSeconds), nil
	case "output.color":
		return strconv.FormatBool(c.Output.Color), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
}

// Set assigns a dotted key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "language":
		if err := ValidateLanguage(value); err != nil {
			return err
		}
		c.Language = value
	case "cache.dir":
		c.Cache.Dir = value
	case "cache.ttl_seconds":
		ttl, err := cache.ParseTTL(value)
		if err != nil {
			return err
		}
		c.Cache.TTLSeconds = ttl
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("api.timeout_seconds: %w", err)
		}
		c.API.TimeoutSeconds = n
	case "output.color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("output.color: %w", err)
		}
		c.Output.Color = b
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	default:
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return nil
}
