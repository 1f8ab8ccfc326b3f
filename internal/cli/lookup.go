package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brian3647/nimi/internal/cache"
	"github.com/Brian3647/nimi/internal/config"
	"github.com/Brian3647/nimi/internal/linku"
	"github.com/Brian3647/nimi/internal/logging"
	"github.com/Brian3647/nimi/internal/lookup"
	"github.com/Brian3647/nimi/internal/tui"
	"github.com/Brian3647/nimi/internal/words"
	"github.com/Brian3647/nimi/pkg/version"
)

// lookupOptions holds the root command's lookup flags.
type lookupOptions struct {
	word     string
	lang     string
	cacheTTL string
	json     bool
	document bool
	refresh  bool
	noColor  bool
	compact  bool

	tty TTY
}

// runLookup resolves the document for the requested language and prints
// either the whole document, one raw record, or the formatted definition.
func runLookup(cmd *cobra.Command, opts *lookupOptions) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	lang := config.GetLanguage()
	if opts.lang != "" {
		lang = opts.lang
	}
	if err := config.ValidateLanguage(lang); err != nil {
		return err
	}

	ttl, err := resolveTTL(opts)
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	svc := lookup.New(store, newFetcher(cfg), lookup.WithLogger(logging.ComponentLogger(baseLogger, "lookup")))

	logging.FromContext(ctx).Debug().
		Str("lang", lang).
		Str("word", opts.word).
		Uint64("ttl_seconds", ttl).
		Bool("refresh", opts.refresh).
		Msg("looking up word")

	if opts.document || opts.json {
		doc, docErr := getDocument(cmd, svc, lang, ttl, opts.refresh)
		if docErr != nil {
			return docErr
		}
		if !opts.document {
			doc = lookup.ExtractWord(doc, opts.word)
		}
		return printJSON(cmd, doc, opts)
	}

	var word *words.Word
	if opts.refresh {
		doc, refreshErr := svc.Refresh(ctx, lang)
		if refreshErr != nil {
			return refreshErr
		}
		word, err = words.Decode(lookup.ExtractWord(doc, opts.word), opts.word, lang)
	} else {
		word, err = svc.Lookup(ctx, lang, opts.word, ttl)
	}
	if err != nil {
		return notFoundExit(err)
	}

	noColor := opts.noColor || !cfg.Output.Color
	view := tui.NewWordView(tui.NewRenderer(cmd.OutOrStdout(), noColor))
	_, err = fmt.Fprint(cmd.OutOrStdout(), view.Render(word, lang))
	return err
}

func getDocument(cmd *cobra.Command, svc *lookup.Service, lang string, ttl uint64, refresh bool) (json.RawMessage, error) {
	if refresh {
		return svc.Refresh(cmd.Context(), lang)
	}
	return svc.GetDocument(cmd.Context(), lang, ttl)
}

// resolveTTL applies --refresh and --cache-ttl on top of the configured TTL.
func resolveTTL(opts *lookupOptions) (uint64, error) {
	if opts.refresh {
		return 0, nil
	}
	if opts.cacheTTL != "" {
		ttl, err := cache.ParseTTL(opts.cacheTTL)
		if err != nil {
			return 0, fmt.Errorf("invalid --cache-ttl: %w", err)
		}
		return ttl, nil
	}
	return config.GetCacheTTLSeconds(), nil
}

// printJSON writes raw indented on a terminal and compact otherwise.
func printJSON(cmd *cobra.Command, raw json.RawMessage, opts *lookupOptions) error {
	pretty := !opts.compact && opts.tty.stdout()
	out, err := tui.RenderJSON(raw, pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// newStore opens the cache store at the configured directory.
func newStore(cfg *config.Config) (*cache.FileStore, error) {
	root, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileStore(root, cache.WithLogger(logging.ComponentLogger(baseLogger, "cache"))), nil
}

// newFetcher builds the linku client from the API settings.
func newFetcher(cfg *config.Config) *linku.Client {
	return linku.NewClient(
		linku.WithBaseURL(cfg.API.BaseURL),
		linku.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
		linku.WithUserAgent(version.UserAgent()),
		linku.WithLogger(logging.ComponentLogger(baseLogger, "linku")),
	)
}
