// Package styles provides shared lipgloss styles for CLI and TUI
// components.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name, falling
// back to the default theme for unknown names.
func GetPalette(name string) Palette {
	if p, ok := themes[name]; ok {
		return p
	}
	return themes[DefaultTheme]
}

// Set is the ready-to-use style set built from a palette.
type Set struct {
	Header    lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Completed lipgloss.Style
	Pinned    lipgloss.Style
	Overdue   lipgloss.Style
	Muted     lipgloss.Style
}

// NewSet builds the shared style set from a palette.
func NewSet(p Palette) Set {
	return Set{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Item:      lipgloss.NewStyle().Foreground(p.Foreground),
		Selected:  lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface).Bold(true),
		Completed: lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Pinned:    lipgloss.NewStyle().Foreground(p.Warning),
		Overdue:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
	}
}
