package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Slate with blue/red sides
	ThemeMonokai ThemeName = "monokai" // Classic Monokai editor colors
	ThemeDracula ThemeName = "dracula" // Dracula theme colors
	ThemeNord    ThemeName = "nord"    // Nord theme - cool blue-gray
)

// BuiltinThemes returns all theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
	}
}

// IsValidTheme checks if a theme name is known.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// Palette defines the color scheme for a theme.
type Palette struct {
	Primary   lipgloss.Color // Titles, active phase
	Secondary lipgloss.Color // Completed phases, help keys
	Warning   lipgloss.Color // Transitions and evaluation banners
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color

	Pro      lipgloss.Color
	Con      lipgloss.Color
	Citation lipgloss.Color
	Winner   lipgloss.Color
}

// DefaultPalette uses gray surfaces, blue for the affirmative, red for the
// opposition and emerald citation badges.
func DefaultPalette() *Palette {
	return &Palette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		Pro:      lipgloss.Color("#60A5FA"), // blue-400
		Con:      lipgloss.Color("#F87171"), // red-400
		Citation: lipgloss.Color("#34D399"), // emerald-400
		Winner:   lipgloss.Color("#FBBF24"), // yellow-400
	}
}

// MonokaiPalette returns the Monokai editor palette.
func MonokaiPalette() *Palette {
	return &Palette{
		Primary:   lipgloss.Color("#F92672"),
		Secondary: lipgloss.Color("#A6E22E"),
		Warning:   lipgloss.Color("#E6DB74"),
		Error:     lipgloss.Color("#F92672"),
		Muted:     lipgloss.Color("#75715E"),
		Surface:   lipgloss.Color("#272822"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#49483E"),

		Pro:      lipgloss.Color("#66D9EF"),
		Con:      lipgloss.Color("#FD971F"),
		Citation: lipgloss.Color("#A6E22E"),
		Winner:   lipgloss.Color("#E6DB74"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *Palette {
	return &Palette{
		Primary:   lipgloss.Color("#BD93F9"),
		Secondary: lipgloss.Color("#50FA7B"),
		Warning:   lipgloss.Color("#F1FA8C"),
		Error:     lipgloss.Color("#FF5555"),
		Muted:     lipgloss.Color("#6272A4"),
		Surface:   lipgloss.Color("#282A36"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#44475A"),

		Pro:      lipgloss.Color("#8BE9FD"),
		Con:      lipgloss.Color("#FF79C6"),
		Citation: lipgloss.Color("#50FA7B"),
		Winner:   lipgloss.Color("#F1FA8C"),
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *Palette {
	return &Palette{
		Primary:   lipgloss.Color("#88C0D0"),
		Secondary: lipgloss.Color("#A3BE8C"),
		Warning:   lipgloss.Color("#EBCB8B"),
		Error:     lipgloss.Color("#BF616A"),
		Muted:     lipgloss.Color("#4C566A"),
		Surface:   lipgloss.Color("#2E3440"),
		Text:      lipgloss.Color("#ECEFF4"),
		Border:    lipgloss.Color("#3B4252"),

		Pro:      lipgloss.Color("#81A1C1"),
		Con:      lipgloss.Color("#D08770"),
		Citation: lipgloss.Color("#A3BE8C"),
		Winner:   lipgloss.Color("#EBCB8B"),
	}
}

// GetPalette returns the palette for name, falling back to the default.
func GetPalette(name ThemeName) *Palette {
	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeNord:
		return NordPalette()
	default:
		return DefaultPalette()
	}
}
