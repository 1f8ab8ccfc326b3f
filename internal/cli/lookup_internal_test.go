package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian3647/nimi/internal/config"
	"github.com/Brian3647/nimi/internal/words"
)

func TestResolveTTL(t *testing.T) {
	config.SetGlobalConfig(&config.Config{Cache: config.CacheConfig{TTLSeconds: 600}})
	t.Cleanup(config.ResetGlobalConfigForTest)

	tests := []struct {
		name    string
		opts    lookupOptions
		want    uint64
		wantErr bool
	}{
		{name: "config default", opts: lookupOptions{}, want: 600},
		{name: "seconds flag", opts: lookupOptions{cacheTTL: "30"}, want: 30},
		{name: "duration flag", opts: lookupOptions{cacheTTL: "1h30m"}, want: 5400},
		{name: "sub-second flag rounds up", opts: lookupOptions{cacheTTL: "500ms"}, want: 1},
		{name: "zero flag", opts: lookupOptions{cacheTTL: "0"}, want: 0},
		{name: "refresh", opts: lookupOptions{refresh: true}, want: 0},
		{name: "negative", opts: lookupOptions{cacheTTL: "-1h"}, wantErr: true},
		{name: "garbage", opts: lookupOptions{cacheTTL: "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTTL(&tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotFoundExit(t *testing.T) {
	notFound := &words.NotFoundError{Word: "nope", Lang: "en"}

	err := notFoundExit(notFound)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCodeNotFound, exitErr.ExitCode)
	assert.Equal(t, notFound.Error(), err.Error())
	assert.ErrorIs(t, err, notFound)

	other := errors.New("boom")
	assert.Same(t, other, notFoundExit(other))
	assert.Equal(t, ExitCodeError, ExitCode(other))
	assert.Equal(t, 0, ExitCode(nil))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", formatSize(0))
	assert.Equal(t, "1023 B", formatSize(1023))
	assert.Equal(t, "1.0 KiB", formatSize(1024))
	assert.Equal(t, "1.5 MiB", formatSize(3*mib/2))
	assert.Equal(t, "dictionary", pluralize(1, "dictionary", "dictionaries"))
	assert.Equal(t, "dictionaries", pluralize(2, "dictionary", "dictionaries"))
}
