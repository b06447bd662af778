package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (Cyan) for headers, readable on both themes
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) for secondary text
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// SpeakStyle is the assistant's spoken reply in the terminal
	SpeakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// PromptStyle ANSI 3 (Yellow) for confirmation prompts
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	// NoticeStyle ANSI 5 (Magenta) for alarm and reminder notifications
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)
