package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for the grid and chrome.
type Theme struct {
	Name    string
	Alive   lipgloss.Color
	Dead    lipgloss.Color
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Alive:   lipgloss.Color("#f5f5f5"),
		Dead:    lipgloss.Color("#1c1c1c"),
		Primary: lipgloss.Color("86"),
		Text:    lipgloss.Color("255"),
		Muted:   lipgloss.Color("242"),
		Success: lipgloss.Color("82"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("203"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Alive:   lipgloss.Color("#33ff66"), // green phosphor
		Dead:    lipgloss.Color("#001100"),
		Primary: lipgloss.Color("#00cc00"),
		Text:    lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Alive:   lipgloss.Color("#00a8cc"),
		Dead:    lipgloss.Color("#001a33"),
		Primary: lipgloss.Color("#0077be"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Alive:   lipgloss.Color("#feca57"),
		Dead:    lipgloss.Color("#2d1b2e"),
		Primary: lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemePhosphor,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns the named theme, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	alive, dead                     lipgloss.Style
	title, text, muted, dim         lipgloss.Style
	running, stopped, errText, keys lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		alive:   lipgloss.NewStyle().Foreground(t.Alive),
		dead:    lipgloss.NewStyle().Foreground(t.Dead),
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		text:    lipgloss.NewStyle().Foreground(t.Text),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		dim:     lipgloss.NewStyle().Foreground(t.Muted).Faint(true),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		stopped: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		errText: lipgloss.NewStyle().Foreground(t.Error),
		keys:    lipgloss.NewStyle().Foreground(t.Primary),
	}
}
