// Package tui implements a full-screen Bubble Tea picker for recipe
// choices, used instead of the line-based prompt when requested.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	numStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
