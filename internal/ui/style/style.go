// Package style holds the palette, icons and text styles used by depot's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Bullet  = "•"
)

// Styles groups the text styles bound to one renderer.
type Styles struct {
	Heading lipgloss.Style
	Version lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
}

// New returns the styles rendered through r.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().Foreground(Iris).Bold(true),
		Version: r.NewStyle().Foreground(Green),
		Muted:   r.NewStyle().Foreground(Slate),
		Success: r.NewStyle().Foreground(Green).Bold(true),
	}
}
