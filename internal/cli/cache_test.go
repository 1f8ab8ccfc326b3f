package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian3647/nimi/internal/cli"
)

func TestCachePath(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, false, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, env.cacheDir+"\n", out)
}

func TestCacheList(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(t, false, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is empty")

	_, _, err = execute(t, false, "toki")
	require.NoError(t, err)
	_, _, err = execute(t, false, "-t", "tok", "toki")
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(env.cacheDir, "tok.json"), old, old))

	out, _, err = execute(t, false, "cache", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "LANGUAGE")
	assert.True(t, strings.HasPrefix(lines[1], "en "), lines[1])
	assert.Contains(t, lines[1], "fresh")
	assert.True(t, strings.HasPrefix(lines[2], "tok "), lines[2])
	assert.Contains(t, lines[2], "2d")
	assert.Contains(t, lines[2], "expired")
	assert.Contains(t, out, "TTL: 1d")
}

func TestCacheClear(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(t, false, "toki")
	require.NoError(t, err)

	out, _, err := execute(t, false, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 cached dictionary\n", out)

	entries, err := os.ReadDir(env.cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The next lookup downloads again.
	_, _, err = execute(t, false, "toki")
	require.NoError(t, err)
	assert.Equal(t, int32(2), env.hits.Load())

	out, _, err = execute(t, false, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 cached dictionary\n", out)
	out, _, err = execute(t, false, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Removed 0 cached dictionaries\n", out)
}

func TestCacheClear_ConfirmsOnTerminal(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(t, false, "toki")
	require.NoError(t, err)

	run := func(input string, args ...string) string {
		var stdout bytes.Buffer
		cmd := cli.NewRootCmdWithTTY("test", cli.TTY{Stdin: func() bool { return true }})
		cmd.SetOut(&stdout)
		cmd.SetErr(&stdout)
		cmd.SetIn(strings.NewReader(input))
		cmd.SetArgs(append([]string{"cache", "clear"}, args...))
		require.NoError(t, cmd.Execute())
		return stdout.String()
	}

	out := run("n\n")
	assert.Contains(t, out, "Remove 1 cached dictionary from "+env.cacheDir+"? [y/N] ")
	assert.Contains(t, out, "Aborted")
	entries, err := os.ReadDir(env.cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	out = run("y\n")
	assert.Contains(t, out, "Removed 1 cached dictionary")

	_, _, err = execute(t, false, "toki")
	require.NoError(t, err)
	out = run("", "--yes")
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Removed 1 cached dictionary")
}

func TestCacheClear_RefusesSharedDirectory(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(t, false, "toki")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(env.cacheDir, "package.json"), []byte(`{}`), 0o600))

	_, _, err = execute(t, false, "cache", "clear", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package.json")
	assert.Equal(t, cli.ExitCodeError, cli.ExitCode(err))

	_, statErr := os.Stat(filepath.Join(env.cacheDir, "en.json"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(env.cacheDir, "package.json"))
	assert.NoError(t, statErr)
}
