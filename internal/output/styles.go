package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: project names, package ids, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for success lines and info-level logcat entries.
	ColorGreen = lipgloss.Color("82")

	// ColorBlue is used for debug-level logcat entries.
	ColorBlue = lipgloss.Color("39")

	// ColorYellow is used for warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for failures and error-level logcat entries.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, package ids, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSuccess styles success lines.
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleFailure styles failure lines.
	StyleFailure = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleWarning styles warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)
)

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatFailure renders a red cross with a message.
func FormatFailure(msg string) string {
	return StyleFailure.Render("✗ " + msg)
}
