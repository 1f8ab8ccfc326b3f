// Package lookup resolves word documents through the on-disk cache, falling
// back to the word API on a miss, and extracts single word records from them.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Brian3647/nimi/internal/words"
)

// nullRecord is what ExtractWord returns for absent words.
var nullRecord = json.RawMessage("null") //nolint:gochecknoglobals // immutable sentinel

// Store is the part of the cache the service needs.
type Store interface {
	Read(key string, ttlSeconds uint64) (json.RawMessage, error)
	Write(key string, value any) error
}

// Fetcher downloads the document for a language.
type Fetcher interface {
	Fetch(ctx context.Context, lang string) (json.RawMessage, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, lang string) (json.RawMessage, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, lang string) (json.RawMessage, error) {
	return f(ctx, lang)
}

// Service combines a Store and a Fetcher.
type Service struct {
	store   Store
	fetcher Fetcher
	logger  zerolog.Logger
	group   singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service.
func New(store Store, fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		store:   store,
		fetcher: fetcher,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDocument returns the words document for lang. A fresh cache entry is
// returned without touching the network; otherwise the document is fetched,
// written back to the cache and returned. Fetch errors are returned unchanged
// and a failed cache write fails the call.
func (s *Service) GetDocument(ctx context.Context, lang string, ttlSeconds uint64) (json.RawMessage, error) {
	doc, err := s.store.Read(lang, ttlSeconds)
	if err != nil {
		return nil, fmt.Errorf("reading cache for %q: %w", lang, err)
	}
	if doc != nil {
		s.logger.Debug().Str("lang", lang).Msg("serving document from cache")
		return doc, nil
	}

	return s.Refresh(ctx, lang)
}

// Refresh downloads the document for lang without consulting the cache and
// writes it back. Concurrent callers for the same language share one download.
func (s *Service) Refresh(ctx context.Context, lang string) (json.RawMessage, error) {
	v, err, shared := s.group.Do(lang, func() (any, error) {
		return s.fetchAndStore(ctx, lang)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug().Str("lang", lang).Msg("shared in-flight fetch")
	}
	return v.(json.RawMessage), nil
}

func (s *Service) fetchAndStore(ctx context.Context, lang string) (json.RawMessage, error) {
	s.logger.Debug().Str("lang", lang).Msg("cache miss, fetching document")

	doc, err := s.fetcher.Fetch(ctx, lang)
	if err != nil {
		return nil, err
	}

	if writeErr := s.store.Write(lang, doc); writeErr != nil {
		return nil, fmt.Errorf("writing cache for %q: %w", lang, writeErr)
	}
	return doc, nil
}

// ExtractWord returns the record for word in doc, or JSON null when the
// document has no such member or is not an object. It never fails; decoding
// the result is where an absent word becomes an error.
func ExtractWord(doc json.RawMessage, word string) json.RawMessage {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(doc, &members); err != nil {
		return nullRecord
	}
	record, ok := members[word]
	if !ok {
		return nullRecord
	}
	return record
}

// Lookup fetches the document for lang and decodes the record for word.
// An absent word is reported as *words.NotFoundError.
func (s *Service) Lookup(ctx context.Context, lang, word string, ttlSeconds uint64) (*words.Word, error) {
	doc, err := s.GetDocument(ctx, lang, ttlSeconds)
	if err != nil {
		return nil, err
	}
	return words.Decode(ExtractWord(doc, word), word, lang)
}
