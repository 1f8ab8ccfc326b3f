package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, false, "config", "init")
	require.NoError(t, err)
	path := filepath.Join(env.home, "config.yaml")
	assert.Contains(t, out, "Configuration file: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "en", saved["language"])

	// Environment overrides are not persisted.
	api, ok := saved["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://api.linku.la/v1", api["base_url"])

	_, _, err = execute(t, false, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, false, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_CreatesNestedConfigDir(t *testing.T) {
	env := newTestEnv(t)
	home := filepath.Join(env.home, "nested", "seme")
	t.Setenv("SEME_HOME", home)

	_, _, err := execute(t, false, "config", "init")
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(home, "config.yaml"))
	assert.NoError(t, statErr)

	blocker := filepath.Join(env.home, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))
	t.Setenv("SEME_HOME", filepath.Join(blocker, "seme"))

	_, _, err = execute(t, false, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}

func TestConfigInit_RepairsMalformedFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache: [1, 2"), 0o600))

	_, stderr, err := execute(t, false, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "using defaults")

	_, _, err = execute(t, false, "config", "validate")
	require.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, false, "config", "set", "language", "tok")
	require.NoError(t, err)
	assert.Equal(t, "language = tok\n", out)

	out, _, err = execute(t, false, "config", "set", "cache.ttl_seconds", "2h")
	require.NoError(t, err)
	assert.Equal(t, "cache.ttl_seconds = 7200\n", out)

	out, _, err = execute(t, false, "config", "get", "language")
	require.NoError(t, err)
	assert.Equal(t, "tok\n", out)

	data, err := os.ReadFile(filepath.Join(env.home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ttl_seconds: 7200")
	assert.NotContains(t, string(data), env.server.URL, "SEME_API_URL is not written to the file")

	// The lookup now defaults to the configured language.
	out, _, err = execute(t, false, "toki")
	require.NoError(t, err)
	assert.Contains(t, out, "toki li toki")
}

func TestConfigSet_Errors(t *testing.T) {
	newTestEnv(t)

	_, _, err := execute(t, false, "config", "set", "plugins.aws", "on")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration key")

	_, _, err = execute(t, false, "config", "set", "api.timeout_seconds", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to save invalid configuration")

	_, _, err = execute(t, false, "config", "get", "nope")
	require.Error(t, err)
}

func TestConfigList(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, false, "config", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "language"))
	assert.Contains(t, lines[0], "en")
	assert.Contains(t, out, env.server.URL+"/v1")
}

func TestConfigValidate(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, false, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Language: en")

	require.NoError(t, os.WriteFile(filepath.Join(env.home, "config.yaml"),
		[]byte("logging:\n  level: loud\n"), 0o600))
	t.Setenv("SEME_LOG_LEVEL", "")

	_, _, err = execute(t, false, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("SEME_LOG_LEVEL", "")
	logFile := filepath.Join(env.home, "logs", "seme.log")
	require.NoError(t, os.WriteFile(filepath.Join(env.home, "config.yaml"),
		[]byte("logging:\n  level: error\n  file: "+logFile+"\n"), 0o600))

	out, _, err := execute(t, false, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+filepath.Join(env.home, "config.yaml"))
	assert.Contains(t, out, "Cache directory: "+env.cacheDir)
	assert.Contains(t, out, "Logging to "+logFile)

	_, statErr := os.Stat(logFile)
	assert.NoError(t, statErr, "file logging creates the log file")
}
