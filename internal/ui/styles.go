// Package ui renders search state for terminal front ends.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color palette
var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#7928CA", Dark: "#7D56F4"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#848484"}
	colorSuccess   = lipgloss.AdaptiveColor{Light: "#12B76A", Dark: "#73F59F"}
	colorDanger    = lipgloss.AdaptiveColor{Light: "#D92D20", Dark: "#F97066"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#98A2B3", Dark: "#667085"}
	colorText      = lipgloss.AdaptiveColor{Light: "#1D2939", Dark: "#F2F4F7"}
	colorHighlight = lipgloss.AdaptiveColor{Light: "#E040FB", Dark: "#EA80FC"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#D0D5DD", Dark: "#475467"}
)

// rating gradient endpoints, low to high
const (
	ratingLow  = "#F97066"
	ratingHigh = "#73F59F"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Foreground(colorText).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	categoryStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Italic(true)

	outOfStockStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Faint(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)
)

// blendHex mixes two hex colors in HSV space; t is clamped to [0, 1].
func blendHex(colorA, colorB string, t float64) string {
	if t <= 0 {
		return colorA
	}
	if t >= 1 {
		return colorB
	}
	start, err := colorful.Hex(colorA)
	if err != nil {
		return colorA
	}
	end, err := colorful.Hex(colorB)
	if err != nil {
		return colorB
	}
	return start.BlendHsv(end, t).Clamped().Hex()
}

// RatingColor shades a 0-5 star rating from red to green.
func RatingColor(rating float64) lipgloss.Color {
	return lipgloss.Color(blendHex(ratingLow, ratingHigh, rating/5))
}
