package cache

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// dirPerm is the permission used when creating the cache root.
const dirPerm = 0o750

// FileStore keeps one JSON document per key under a root directory.
// It holds no in-memory state besides its configuration and is safe for
// concurrent use; writers race with last-writer-wins semantics.
type FileStore struct {
	root   string
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock replaces time.Now for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

// WithLogger sets the logger used for hit/miss diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *FileStore) {
		s.logger = logger
	}
}

// EntryInfo describes one cached document on disk.
type EntryInfo struct {
	Key     string
	Path    string
	Size    int64
	ModTime time.Time
}

// NewFileStore creates a store rooted at root. The directory itself is created
// lazily by the first operation that needs it.
func NewFileStore(root string, opts ...Option) *FileStore {
	s := &FileStore{
		root:   root,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the cache root directory.
func (s *FileStore) Root() string {
	return s.root
}

// ResolvePath returns the file that holds key, creating the root directory if
// needed. Calling it repeatedly is harmless.
func (s *FileStore) ResolvePath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	if err := s.ensureRoot(); err != nil {
		return "", err
	}
	return filepath.Join(s.root, encodeKey(key)+cacheFileExtension), nil
}

// Read returns the cached document for key if it was written no more than
// ttlSeconds ago. A missing or expired entry yields (nil, nil).
func (s *FileStore) Read(key string, ttlSeconds uint64) (json.RawMessage, error) {
	path, err := s.ResolvePath(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("key", key).Str("path", path).Msg("cache miss")
			return nil, nil
		}
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	now := s.now()
	if !IsFresh(info.ModTime(), now, ttlSeconds) {
		s.logger.Debug().
			Str("key", key).
			Str("path", path).
			Dur("age", now.Sub(info.ModTime())).
			Uint64("ttl_seconds", ttlSeconds).
			Msg("cache entry expired")
		return nil, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	// Unmarshal validates the whole input before copying it into the RawMessage.
	var doc json.RawMessage
	if unmarshalErr := json.Unmarshal(data, &doc); unmarshalErr != nil {
		return nil, &CorruptError{Path: path, Excerpt: excerpt(data), Err: unmarshalErr}
	}

	s.logger.Debug().Str("key", key).Str("path", path).Int("bytes", len(data)).Msg("cache hit")
	return doc, nil
}

// Write serializes value and atomically replaces the entry for key.
func (s *FileStore) Write(key string, value any) error {
	path, err := s.ResolvePath(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return &SerializationError{Key: key, Value: value, Err: err}
	}

	// Write to a temporary file in the same directory, then rename over the target.
	tmp, err := os.CreateTemp(s.root, "."+encodeKey(key)+"-*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: path, Err: writeErr}
	}
	if syncErr := tmp.Sync(); syncErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: path, Err: syncErr}
	}
	if closeErr := tmp.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return &IOError{Op: "write", Path: path, Err: closeErr}
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: path, Err: renameErr}
	}

	s.logger.Debug().Str("key", key).Str("path", path).Int("bytes", len(data)).Msg("cache entry written")
	return nil
}

// List returns every entry under the root, sorted by key. Expired entries are
// included; callers judge freshness with IsFresh.
func (s *FileStore) List() ([]EntryInfo, error) {
	if err := s.ensureRoot(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &IOError{Op: "list", Path: s.root, Err: err}
	}

	var entries []EntryInfo
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if dirEntry.IsDir() || !isEntryFileName(name) {
			continue
		}

		info, infoErr := dirEntry.Info()
		if infoErr != nil {
			// Removed between ReadDir and Info.
			continue
		}

		key, decodeErr := decodeKey(strings.TrimSuffix(name, cacheFileExtension))
		if decodeErr != nil {
			continue
		}

		entries = append(entries, EntryInfo{
			Key:     key,
			Path:    filepath.Join(s.root, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Clear removes every cache entry and returns how many were deleted. When the
// root also holds files the store did not write, nothing is removed and a
// *ForeignFilesError lists them.
func (s *FileStore) Clear() (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	foreign, err := s.foreignFiles()
	if err != nil {
		return 0, err
	}
	if len(foreign) > 0 {
		return 0, &ForeignFilesError{Dir: s.root, Names: foreign}
	}

	removed := 0
	for _, entry := range entries {
		if removeErr := os.Remove(entry.Path); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			return removed, &IOError{Op: "remove", Path: entry.Path, Err: removeErr}
		}
		removed++
	}

	s.logger.Debug().Str("root", s.root).Int("removed", removed).Msg("cache cleared")
	return removed, nil
}

// foreignFiles returns the names under the root that are neither cache entries
// nor temporary files left by an interrupted Write.
func (s *FileStore) foreignFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &IOError{Op: "list", Path: s.root, Err: err}
	}

	var foreign []string
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if isTempFileName(name) {
			continue
		}
		if !dirEntry.IsDir() && isEntryFileName(name) {
			continue
		}
		foreign = append(foreign, name)
	}
	return foreign, nil
}

// isEntryFileName reports whether name is exactly what encodeKey produces for
// some key.
func isEntryFileName(name string) bool {
	stem, ok := strings.CutSuffix(name, cacheFileExtension)
	if !ok || stem == "" {
		return false
	}
	key, err := decodeKey(stem)
	return err == nil && encodeKey(key) == stem
}

func isTempFileName(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}

// Now returns the store's notion of the current time.
func (s *FileStore) Now() time.Time {
	return s.now()
}

func (s *FileStore) ensureRoot() error {
	if s.root == "" {
		return &DirectoryError{Err: errors.New("cache directory path is empty")}
	}
	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		return &DirectoryError{Dir: s.root, Err: err}
	}
	return nil
}
