package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI palette shared by the views. Basic colours keep output readable on
// both light and dark terminals.
const (
	ColorCore     = lipgloss.Color("2") // green
	ColorCommon   = lipgloss.Color("3") // yellow
	ColorUncommon = lipgloss.Color("1") // red
	ColorObscure  = lipgloss.Color("5") // magenta
	ColorMuted    = lipgloss.Color("8") // bright black
)

// NewRenderer returns a lipgloss renderer for w. With noColor set all styling
// is reduced to plain text.
func NewRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
