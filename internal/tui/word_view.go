package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Brian3647/nimi/internal/words"
)

// ruleWidth is the width of the separator above the definition.
const ruleWidth = 14

// WordView renders word records for the terminal.
type WordView struct {
	bold     lipgloss.Style
	muted    lipgloss.Style
	category map[words.UsageCategory]lipgloss.Style
}

// NewWordView creates a view drawing with r.
func NewWordView(r *lipgloss.Renderer) *WordView {
	return &WordView{
		bold:  r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(ColorMuted),
		category: map[words.UsageCategory]lipgloss.Style{
			words.UsageCore:     r.NewStyle().Foreground(ColorCore),
			words.UsageCommon:   r.NewStyle().Foreground(ColorCommon),
			words.UsageUncommon: r.NewStyle().Foreground(ColorUncommon),
			words.UsageObscure:  r.NewStyle().Foreground(ColorObscure),
			words.UsageSandbox:  r.NewStyle().Foreground(ColorMuted),
		},
	}
}

// Render formats w for lang:
//
//	~> toki <glyph>
//	core (98%) · pu - jan Sonja
//	-------------- English
//	communicate, say, think; conversation, story, language
func (v *WordView) Render(w *words.Word, lang string) string {
	var sb strings.Builder

	sb.WriteString(v.bold.Render("~>"))
	sb.WriteString(" ")
	sb.WriteString(v.bold.Render(w.Word))
	if glyph, ok := w.Glyph(); ok {
		sb.WriteString(" ")
		sb.WriteRune(glyph)
	}
	sb.WriteString("\n")

	sb.WriteString(v.renderCategory(w.UsageCategory))
	sb.WriteString(" ")
	sb.WriteString(v.muted.Render(fmt.Sprintf("(%d%%) ·", w.UsagePercentage())))
	if w.Book != "" {
		sb.WriteString(" ")
		sb.WriteString(v.muted.Render(w.Book))
	}
	if len(w.Creator) > 0 {
		sb.WriteString(" - ")
		sb.WriteString(strings.Join(w.Creator, ", "))
	}
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat("-", ruleWidth))
	if name := LanguageName(lang); name != "" {
		sb.WriteString(" ")
		sb.WriteString(v.muted.Render(name))
	}
	sb.WriteString("\n")

	definition, ok := w.Definition(lang)
	if !ok {
		definition = fmt.Sprintf("No definition found for %q with language code %q.", w.Word, lang)
	}
	sb.WriteString(definition)
	sb.WriteString("\n")

	return sb.String()
}

func (v *WordView) renderCategory(c words.UsageCategory) string {
	style, ok := v.category[c]
	if !ok {
		return string(c)
	}
	return style.Render(string(c))
}

// LanguageName returns the English name of a language code, or "" when the
// code is not a known BCP 47 tag.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// RenderJSON re-encodes raw either indented or compact.
func RenderJSON(raw json.RawMessage, pretty bool) (string, error) {
	var buf bytes.Buffer
	var err error
	if pretty {
		err = json.Indent(&buf, raw, "", "  ")
	} else {
		err = json.Compact(&buf, raw)
	}
	if err != nil {
		return "", fmt.Errorf("formatting json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}
