// Package words models a single linku word record.
package words

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UsageCategory is linku's coarse popularity bucket for a word.
type UsageCategory string

// Known usage categories.
const (
	UsageCore     UsageCategory = "core"
	UsageCommon   UsageCategory = "common"
	UsageUncommon UsageCategory = "uncommon"
	UsageObscure  UsageCategory = "obscure"
	UsageSandbox  UsageCategory = "sandbox"
)

// UnmarshalJSON rejects categories the API does not define.
func (c *UsageCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch UsageCategory(s) {
	case UsageCore, UsageCommon, UsageUncommon, UsageObscure, UsageSandbox:
		*c = UsageCategory(s)
		return nil
	default:
		return fmt.Errorf("unknown usage category %q", s)
	}
}

// Word is one entry of a linku words document.
type Word struct {
	ID              string                 `json:"id"`
	Word            string                 `json:"word"`
	Book            string                 `json:"book"`
	Creator         []string               `json:"creator"`
	UsageCategory   UsageCategory          `json:"usage_category"`
	Usage           map[string]int         `json:"usage"`
	Translations    map[string]Translation `json:"translations"`
	Representations *Representations       `json:"representations,omitempty"`
	SeeAlso         []string               `json:"see_also,omitempty"`
	Deprecated      bool                   `json:"deprecated"`
	SourceLanguage  string                 `json:"source_language,omitempty"`
	CoinedEra       string                 `json:"coined_era,omitempty"`
}

// Translation holds the localized texts for one language.
type Translation struct {
	Definition  string `json:"definition"`
	Commentary  string `json:"commentary,omitempty"`
	Etymology   []any  `json:"etymology,omitempty"`
	SpEtymology string `json:"sp_etymology,omitempty"`
}

// Representations holds the writing-system forms of a word.
type Representations struct {
	UCSUR     string   `json:"ucsur,omitempty"`
	Ligatures []string `json:"ligatures,omitempty"`
}

// apiError is the shape the API uses in place of a record.
type apiError struct {
	Message *string `json:"message"`
	Word    *string `json:"word"`
}

// Decode parses a word record extracted from a document. A JSON null or empty
// value means the document has no such word.
func Decode(raw json.RawMessage, word, lang string) (*Word, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &NotFoundError{Word: word, Lang: lang}
	}

	var probe apiError
	if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Message != nil && probe.Word == nil {
		return nil, &DecodeError{Word: word, Raw: excerpt(trimmed), Err: fmt.Errorf("api error: %s", *probe.Message)}
	}

	var w Word
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, &DecodeError{Word: word, Raw: excerpt(trimmed), Err: err}
	}
	return &w, nil
}

// Definition returns the definition for lang.
func (w *Word) Definition(lang string) (string, bool) {
	t, ok := w.Translations[lang]
	if !ok || t.Definition == "" {
		return "", false
	}
	return t.Definition, true
}

// UsagePercentage returns the usage figure of the most recent survey. Survey
// keys are dates ("2023-09"), so the greatest key is the latest one.
func (w *Word) UsagePercentage() int {
	if len(w.Usage) == 0 {
		return 0
	}
	keys := make([]string, 0, len(w.Usage))
	for k := range w.Usage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return w.Usage[keys[len(keys)-1]]
}

// Glyph returns the sitelen pona code point in the UCSUR private use area.
func (w *Word) Glyph() (rune, bool) {
	if w.Representations == nil || w.Representations.UCSUR == "" {
		return 0, false
	}
	hex := strings.TrimPrefix(strings.ToUpper(w.Representations.UCSUR), "U+")
	cp, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || cp > 0x10FFFF {
		return 0, false
	}
	return rune(cp), true
}
