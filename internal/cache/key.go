package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// cacheFileExtension is the file extension used for cache entries.
const cacheFileExtension = ".json"

// reservedStems are device names Windows refuses as file names, with or
// without an extension.
var reservedStems = map[string]bool{ //nolint:gochecknoglobals // lookup table
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// encodeKey maps a cache key to a filename stem. Bytes outside [a-z0-9_-] are
// written as %XX, so two keys never map to names that differ only by case and
// the result is free of path separators, dots and reserved characters. A stem
// that would be a Windows device name has its first byte escaped.
func encodeKey(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isSafeKeyByte(c) && (i > 0 || !reservedStems[key]) {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

// decodeKey reverses encodeKey.
func decodeKey(stem string) (string, error) {
	key, err := url.PathUnescape(stem)
	if err != nil {
		return "", fmt.Errorf("decoding cache file name %q: %w", stem, err)
	}
	return key, nil
}

func isSafeKeyByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	default:
		return false
	}
}
