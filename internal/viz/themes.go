package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view. Field is used for the energy profile,
// Charge for the charge profile.
type Theme struct {
	Name   string
	Field  lipgloss.Color
	Charge lipgloss.Color
	Graph  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "plasma",
		Field:  lipgloss.Color("#ff00ff"),
		Charge: lipgloss.Color("#00ffff"),
		Graph:  lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
		Bad:    lipgloss.Color("#ff4444"),
	},
	{
		Name:   "retro",
		Field:  lipgloss.Color("#00ff00"),
		Charge: lipgloss.Color("#88ff88"),
		Graph:  lipgloss.Color("#00cc00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Good:   lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
		Bad:    lipgloss.Color("#ff0000"),
	},
	{
		Name:   "ocean",
		Field:  lipgloss.Color("#0077be"),
		Charge: lipgloss.Color("#ffd700"),
		Graph:  lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
		Bad:    lipgloss.Color("#ff4444"),
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
