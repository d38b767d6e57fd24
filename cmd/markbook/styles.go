package main

import "github.com/charmbracelet/lipgloss"

// Wizard color palette. Semantic colors only; the tool runs in whatever
// terminal theme the user has.
var (
	accentColor  = lipgloss.Color("#8BC34A")
	errorColor   = lipgloss.Color("#e53935")
	mutedColor   = lipgloss.Color("#6c7a89")
	historyColor = lipgloss.Color("#4db6ac")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	promptStyle = lipgloss.NewStyle().
			Bold(true)

	historyStyle = lipgloss.NewStyle().
			Foreground(historyColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)
