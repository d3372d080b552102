// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual properties of the credential prompts. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Title styles the modal heading.
	Title lipgloss.Style

	// Label styles the "Password for …" line.
	Label lipgloss.Style

	// Error styles the helper's diagnostic text from the previous
	// attempt.
	Error lipgloss.Style

	// Help styles the key hint line at the bottom of the modal.
	Help lipgloss.Style

	// Frame draws the modal border.
	Frame lipgloss.Style
}

// DefaultTheme returns the standard prompt styling.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle(),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
