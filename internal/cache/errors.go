package cache

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for an empty cache key.
var ErrInvalidKey = errors.New("cache key cannot be empty")

// maxExcerptLen bounds how much of an offending payload is copied into error messages.
const maxExcerptLen = 120

// DirectoryError reports that the cache root could not be determined or created.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("cache directory unavailable: %v", e.Err)
	}
	return fmt.Sprintf("failed to create cache directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// CorruptError reports a fresh cache file whose content is not valid JSON.
type CorruptError struct {
	Path    string
	Excerpt string
	Err     error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("failed to parse cache file %s as json (content: %q): %v", e.Path, e.Excerpt, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// IOError reports an unexpected filesystem failure while reading or writing an entry.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// SerializationError reports a value that could not be encoded as JSON for caching.
type SerializationError struct {
	Key   string
	Value any
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("invalid value to add to cache for %q (%s): %v",
		e.Key, excerpt([]byte(fmt.Sprintf("%v", e.Value))), e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// excerpt truncates data for inclusion in an error message.
func excerpt(data []byte) string {
	if len(data) <= maxExcerptLen {
		return string(data)
	}
	return string(data[:maxExcerptLen]) + "..."
}

// ForeignFilesError reports that the cache root holds files the store did not
// write, so clearing it could delete unrelated data.
type ForeignFilesError struct {
	Dir   string
	Names []string
}

func (e *ForeignFilesError) Error() string {
	const maxNames = 5
	names := e.Names
	suffix := ""
	if len(names) > maxNames {
		suffix = fmt.Sprintf(" and %d more", len(names)-maxNames)
		names = names[:maxNames]
	}
	return fmt.Sprintf("refusing to clear %s: it contains files not written by seme (%s%s)",
		e.Dir, strings.Join(names, ", "), suffix)
}
