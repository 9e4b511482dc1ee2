package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultTheme = "lagoon"

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	BarFill   lipgloss.Color
	BarEmpty  lipgloss.Color
}

var palettes = map[string]palette{
	"lagoon": {
		Text:      lipgloss.Color("#e0f2f1"),
		Muted:     lipgloss.Color("#80cbc4"),
		Accent:    lipgloss.Color("#ffb74d"),
		AccentAlt: lipgloss.Color("#4dd0e1"),
		Border:    lipgloss.Color("#26706b"),
		Success:   lipgloss.Color("#a5d6a7"),
		Warning:   lipgloss.Color("#ffe082"),
		Danger:    lipgloss.Color("#ef9a9a"),
		BarFill:   lipgloss.Color("#4db6ac"),
		BarEmpty:  lipgloss.Color("#1c3b3a"),
	},
	"catppuccin": {
		Text:      lipgloss.Color("#cdd6f4"),
		Muted:     lipgloss.Color("#a6adc8"),
		Accent:    lipgloss.Color("#cba6f7"),
		AccentAlt: lipgloss.Color("#89dceb"),
		Border:    lipgloss.Color("#585b70"),
		Success:   lipgloss.Color("#a6e3a1"),
		Warning:   lipgloss.Color("#f9e2af"),
		Danger:    lipgloss.Color("#f38ba8"),
		BarFill:   lipgloss.Color("#94e2d5"),
		BarEmpty:  lipgloss.Color("#313244"),
	},
	"dracula": {
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ff79c6"),
		AccentAlt: lipgloss.Color("#8be9fd"),
		Border:    lipgloss.Color("#44475a"),
		Success:   lipgloss.Color("#50fa7b"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Danger:    lipgloss.Color("#ff5555"),
		BarFill:   lipgloss.Color("#50fa7b"),
		BarEmpty:  lipgloss.Color("#343746"),
	},
	"gruvbox": {
		Text:      lipgloss.Color("#ebdbb2"),
		Muted:     lipgloss.Color("#a89984"),
		Accent:    lipgloss.Color("#fabd2f"),
		AccentAlt: lipgloss.Color("#83a598"),
		Border:    lipgloss.Color("#665c54"),
		Success:   lipgloss.Color("#b8bb26"),
		Warning:   lipgloss.Color("#fe8019"),
		Danger:    lipgloss.Color("#fb4934"),
		BarFill:   lipgloss.Color("#b8bb26"),
		BarEmpty:  lipgloss.Color("#3c3836"),
	},
	"solarized_dark": {
		Text:      lipgloss.Color("#fdf6e3"),
		Muted:     lipgloss.Color("#93a1a1"),
		Accent:    lipgloss.Color("#b58900"),
		AccentAlt: lipgloss.Color("#268bd2"),
		Border:    lipgloss.Color("#586e75"),
		Success:   lipgloss.Color("#859900"),
		Warning:   lipgloss.Color("#cb4b16"),
		Danger:    lipgloss.Color("#dc322f"),
		BarFill:   lipgloss.Color("#859900"),
		BarEmpty:  lipgloss.Color("#073642"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

// ThemeNames lists the available palettes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := ThemeNames()
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

type styles struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	notice lipgloss.Style
	panel  lipgloss.Style
	key    lipgloss.Style
	danger lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:  lipgloss.NewStyle().Foreground(p.Muted),
		notice: lipgloss.NewStyle().Italic(true).Foreground(p.Warning),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		key:    lipgloss.NewStyle().Bold(true).Foreground(p.AccentAlt),
		danger: lipgloss.NewStyle().Bold(true).Foreground(p.Danger),
	}
}

// gaugeBar draws a 20 cell bar; low gauges switch to the danger color.
func gaugeBar(p palette, v int) string {
	const width = 20
	fill := int(float64(v)/100.0*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	color := p.BarFill
	switch {
	case v <= 20:
		color = p.Danger
	case v <= 40:
		color = p.Warning
	}
	full := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", fill))
	empty := lipgloss.NewStyle().Foreground(p.BarEmpty).Render(strings.Repeat("·", width-fill))
	return full + empty
}
