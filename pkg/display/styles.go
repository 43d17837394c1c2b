/* pkg/display/styles.go */

package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#00ffff")
	ColorSuccess = lipgloss.Color("#00ff00")
	ColorWarning = lipgloss.Color("#ffaa00")
	ColorError   = lipgloss.Color("#ff0000")
	ColorMuted   = lipgloss.Color("#666666")
)

// Styles are bound to one writer so colour is only emitted on terminals.
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Added     lipgloss.Style
	Removed   lipgloss.Style
}

func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Separator: r.NewStyle().
			Foreground(ColorMuted),

		Success: r.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		Error: r.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Muted: r.NewStyle().
			Foreground(ColorMuted),

		Added:   r.NewStyle().Foreground(ColorSuccess),
		Removed: r.NewStyle().Foreground(ColorError),
	}
}
