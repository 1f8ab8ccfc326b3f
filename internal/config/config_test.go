package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian3647/nimi/internal/config"
	"github.com/Brian3647/nimi/internal/logging"
)

func TestDefault(t *testing.T) {
	home := isolateConfig(t)

	cfg := config.Default()
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, uint64(86400), cfg.Cache.TTLSeconds)
	assert.Empty(t, cfg.Cache.Dir)
	assert.Equal(t, "https://api.linku.la/v1", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	home := isolateConfig(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
language: de
cache:
  ttl_seconds: 120
logging:
  level: info
`), 0600))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, uint64(120), cfg.Cache.TTLSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)

	t.Setenv(config.EnvLanguage, "tok")
	t.Setenv("SEME_CACHE_TTL_SECONDS", "2h")
	t.Setenv("SEME_CACHE_DIR", "/tmp/other-cache")
	t.Setenv(config.EnvAPIURL, "http://127.0.0.1:9999/v1")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvNoColor, "1")

	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Language)
	assert.Equal(t, uint64(7200), cfg.Cache.TTLSeconds)
	assert.Equal(t, "/tmp/other-cache", cfg.Cache.Dir)
	assert.Equal(t, "http://127.0.0.1:9999/v1", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Output.Color)
}

func TestLoad_Errors(t *testing.T) {
	home := isolateConfig(t)

	t.Run("invalid env TTL", func(t *testing.T) {
		t.Setenv("SEME_CACHE_TTL_SECONDS", "-5s")
		_, err := config.Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEME_CACHE_TTL_SECONDS")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(home, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cache: [1, 2"), 0600))
		_, err := config.Load(path)
		require.Error(t, err)
	})

	t.Run("New falls back to defaults", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("cache: [1, 2"), 0600))
		t.Cleanup(func() { _ = os.Remove(filepath.Join(home, "config.yaml")) })
		cfg := config.New()
		require.NotNil(t, cfg)
		assert.Equal(t, "en", cfg.Language)
	})
}

func TestValidate(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "empty language", mutate: func(c *config.Config) { c.Language = "" }, wantErr: "language must not be empty"},
		{name: "language with space", mutate: func(c *config.Config) { c.Language = "to k" }, wantErr: "whitespace"},
		{name: "relative base url", mutate: func(c *config.Config) { c.API.BaseURL = "/v1" }, wantErr: "absolute http(s) URL"},
		{name: "ftp base url", mutate: func(c *config.Config) { c.API.BaseURL = "ftp://example.com" }, wantErr: "absolute http(s) URL"},
		{name: "zero timeout", mutate: func(c *config.Config) { c.API.TimeoutSeconds = 0 }, wantErr: "timeout_seconds"},
		{name: "bad level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "zero ttl is allowed", mutate: func(c *config.Config) { c.Cache.TTLSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	isolateConfig(t)

	cfg := config.Default()
	cfg.Language = ""
	cfg.API.TimeoutSeconds = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language")
	assert.Contains(t, err.Error(), "timeout_seconds")
}

func TestSave_RoundTrip(t *testing.T) {
	home := isolateConfig(t)

	cfg := config.Default()
	cfg.SetConfigPath(filepath.Join(home, "sub", "config.yaml"))
	cfg.Language = "tok"
	cfg.Cache.TTLSeconds = 600
	cfg.Output.Color = false
	require.NoError(t, cfg.Save())

	info, err := os.Stat(cfg.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := config.Load(cfg.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	entries, err := os.ReadDir(filepath.Dir(cfg.ConfigPath()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file is left behind")
}

func TestSave_NoPath(t *testing.T) {
	cfg := &config.Config{}
	require.Error(t, cfg.Save())
}

func TestGetSet(t *testing.T) {
	isolateConfig(t)
	cfg := config.Default()

	for _, key := range config.Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}

	require.NoError(t, cfg.Set("language", "tok"))
	require.NoError(t, cfg.Set("cache.ttl_seconds", "90m"))
	require.NoError(t, cfg.Set("cache.dir", "/tmp/c"))
	require.NoError(t, cfg.Set("api.base_url", "http://localhost/v1"))
	require.NoError(t, cfg.Set("api.timeout_seconds", "5"))
	require.NoError(t, cfg.Set("output.color", "false"))
	require.NoError(t, cfg.Set("logging.level", "debug"))
	require.NoError(t, cfg.Set("logging.format", "json"))
	require.NoError(t, cfg.Set("logging.file", "/tmp/seme.log"))

	expect := map[string]string{
		"language":            "tok",
		"cache.ttl_seconds":   "5400",
		"cache.dir":           "/tmp/c",
		"api.base_url":        "http://localhost/v1",
		"api.timeout_seconds": "5",
		"output.color":        "false",
		"logging.level":       "debug",
		"logging.format":      "json",
		"logging.file":        "/tmp/seme.log",
	}
	for key, want := range expect {
		got, err := cfg.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

func TestGetSet_Errors(t *testing.T) {
	isolateConfig(t)
	cfg := config.Default()

	_, err := cfg.Get("plugins.aws")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope", "1"), config.ErrUnknownKey)

	assert.Error(t, cfg.Set("cache.ttl_seconds", "forever"))
	assert.Error(t, cfg.Set("api.timeout_seconds", "ten"))
	assert.Error(t, cfg.Set("output.color", "maybe"))
	assert.Error(t, cfg.Set("language", ""))
	assert.Equal(t, "en", cfg.Language)
}

func TestCacheDir(t *testing.T) {
	isolateConfig(t)
	cfg := config.Default()

	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "seme", filepath.Base(dir))

	cfg.Cache.Dir = "/tmp/explicit"
	dir, err = cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit", dir)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.Config{Level: "debug", Format: "json", Output: logging.OutputStderr}, got)

	lc.File = "/tmp/seme.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/seme.log", got.File)
}

func TestMergeFileIfExists(t *testing.T) {
	home := isolateConfig(t)
	cfg := config.Default()

	require.NoError(t, config.MergeFileIfExists(cfg, ""))
	require.NoError(t, config.MergeFileIfExists(cfg, filepath.Join(home, "absent.yaml")))
	assert.Equal(t, "en", cfg.Language)

	path := filepath.Join(home, "present.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: tok\n"), 0600))
	require.NoError(t, config.MergeFileIfExists(cfg, path))
	assert.Equal(t, "tok", cfg.Language)
}
