package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the CLI output.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorGray    = lipgloss.Color("#666666")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by commands and print helpers.
var (
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)
)
