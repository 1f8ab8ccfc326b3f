package cache

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TTL defaults and environment overrides.
const (
	// DefaultTTLSeconds is the default freshness window (1 day).
	DefaultTTLSeconds uint64 = 86400

	// DirName is the subdirectory of the user cache directory that holds entries.
	DirName = "seme"

	// EnvTTLSeconds overrides the configured TTL.
	EnvTTLSeconds = "SEME_CACHE_TTL_SECONDS"

	// EnvCacheDir overrides the cache root directory.
	EnvCacheDir = "SEME_CACHE_DIR"

	minutesPerHour = 60
	hoursPerDay    = 24
)

// ErrInvalidTTL is returned when a TTL string is negative or unparsable.
var ErrInvalidTTL = errors.New("TTL must be a non-negative number of seconds or a duration such as 12h")

// maxTTLSeconds is the largest TTL representable as a time.Duration.
const maxTTLSeconds = uint64(math.MaxInt64 / int64(time.Second))

// IsFresh reports whether an entry written at modTime is still valid at now.
// The boundary is inclusive: an entry exactly ttlSeconds old is fresh. A
// modification time in the future counts as age zero.
func IsFresh(modTime, now time.Time, ttlSeconds uint64) bool {
	age := now.Sub(modTime)
	if age < 0 {
		age = 0
	}
	return age <= TTLDuration(ttlSeconds)
}

// TTLDuration converts seconds to a time.Duration, saturating instead of overflowing.
func TTLDuration(ttlSeconds uint64) time.Duration {
	if ttlSeconds > maxTTLSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ttlSeconds) * time.Second
}

// DefaultRoot returns <user cache dir>/seme.
func DefaultRoot() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", &DirectoryError{Err: fmt.Errorf("failed to get cache path: %w", err)}
	}
	return filepath.Join(base, DirName), nil
}

// TTLFromEnv reads EnvTTLSeconds. ok is false when the variable is unset.
func TTLFromEnv() (uint64, bool, error) {
	envVal := strings.TrimSpace(os.Getenv(EnvTTLSeconds))
	if envVal == "" {
		return 0, false, nil
	}
	ttl, err := ParseTTL(envVal)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", EnvTTLSeconds, err)
	}
	return ttl, true, nil
}

// GetCacheDirFromEnv reads EnvCacheDir. Returns "" when unset.
func GetCacheDirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}

// ParseTTL parses a TTL given as integer seconds ("3600") or as a Go duration
// ("1h30m"). Durations with a fractional second are rounded up, so "500ms" is 1.
func ParseTTL(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if seconds, err := strconv.ParseUint(s, 10, 64); err == nil {
		return seconds, nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, s)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidTTL, s)
	}
	seconds := uint64(duration / time.Second)
	if duration%time.Second != 0 {
		seconds++
	}
	return seconds, nil
}

// FormatDuration renders a duration compactly: "45s", "30m", "5h20m", "3d2h".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < hoursPerDay*time.Hour:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
