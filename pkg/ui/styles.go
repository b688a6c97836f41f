package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

// ColorPair is a dark/light background pair.
type ColorPair = lipgloss.AdaptiveColor

func NewColorPair(dark, light string) ColorPair {
	return ColorPair{Dark: dark, Light: light}
}

var (
	Fuchsia = NewColorPair("#EE6FF8", "#EE6FF8")
	Indigo  = NewColorPair("#7571F9", "#5A56E0")
	Red     = NewColorPair("#ED567A", "#FF4672")
	Green   = NewColorPair("#04B575", "#04B575")
	Gray    = NewColorPair("#626262", "#909090")
	Normal  = NewColorPair("#dddddd", "#1a1a1a")
	Cream   = lipgloss.Color("#FFFDF5")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Cream).
			Background(Indigo).
			Padding(0, 1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(Red).Bold(true)
	StatusStyle = lipgloss.NewStyle().Foreground(Green)
	SubtleStyle = lipgloss.NewStyle().Foreground(Gray)
)

// darkBackground asks the terminal once per process
var darkBackground = sync.OnceValue(te.HasDarkBackground)

// DarkBackground reports whether the terminal background is dark.
func DarkBackground() bool { return darkBackground() }

// TermStyle is a termenv style in the half of c that suits the terminal's
// background, for text styled rune by rune.
func TermStyle(c ColorPair) te.Style {
	color := c.Light
	if darkBackground() {
		color = c.Dark
	}
	return te.Style{}.Foreground(te.ColorProfile().Color(color))
}
