package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	foreground    = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#e6e6e6"}
	background    = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	altForeground = lipgloss.AdaptiveColor{Light: "#5c5c5c", Dark: "#a0a0a0"}
	accent        = lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafd7"}
)

var (
	Regular = lipgloss.NewStyle()
	Bold    = lipgloss.NewStyle().Bold(true)
	Inverse = lipgloss.NewStyle().Foreground(background).Background(foreground)
	Subtle  = lipgloss.NewStyle().Foreground(altForeground)
)

// Styles groups the styles handed to components
type Styles struct {
	Header       lipgloss.Style
	Footer       lipgloss.Style
	SelectedItem lipgloss.Style
	Placeholder  lipgloss.Style
	FilterPrefix lipgloss.Style
	FilterActive lipgloss.Style
	KeyHelp      lipgloss.Style
	Toast        lipgloss.Style
	ChunkingOn   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:       Bold,
		Footer:       Bold,
		SelectedItem: Inverse,
		Placeholder:  Subtle,
		FilterPrefix: Bold,
		FilterActive: lipgloss.NewStyle().Foreground(background).Background(accent),
		KeyHelp:      Bold.Foreground(background).Background(foreground).Underline(true),
		Toast:        Inverse.Padding(0, 1),
		ChunkingOn:   lipgloss.NewStyle().Foreground(accent),
	}
}
