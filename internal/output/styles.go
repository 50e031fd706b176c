package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: paths, project and backend names.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "created" file status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "overwritten" and "patched" file statuses.
	ColorYellow = lipgloss.Color("220")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// colorBlue is used for table headers.
	colorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, project names, backends).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (creating, patching, rendering).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// File status constants.
const (
	StatusCreated     = "created"
	StatusOverwritten = "overwritten"
	StatusPatched     = "patched"
)

// statusStyle returns the lipgloss style for a file status.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusOverwritten, StatusPatched:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatStep renders a numbered step, e.g. "[2/4] Patching manifest".
func FormatStep(n, total int, action string) string {
	counter := StyleDim.Render(fmt.Sprintf("[%d/%d]", n, total))
	return counter + " " + StyleAction.Render(action)
}
