package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// logcatLevels maps the brief-format level marker to its style, checked in order.
var logcatLevels = []struct {
	marker string
	style  lipgloss.Style
}{
	{" D ", lipgloss.NewStyle().Foreground(ColorBlue)},
	{" I ", lipgloss.NewStyle().Foreground(ColorGreen)},
	{" W ", lipgloss.NewStyle().Foreground(ColorYellow)},
	{" E ", lipgloss.NewStyle().Foreground(ColorRed)},
	{" F ", lipgloss.NewStyle().Bold(true).Foreground(ColorRed)},
}

// FormatLogcatLine colorizes a threadtime logcat line by its level. Lines
// without a recognised level (verbose entries, banners) return ok=false.
func FormatLogcatLine(line string) (string, bool) {
	for _, l := range logcatLevels {
		if strings.Contains(line, l.marker) {
			return l.style.Render(line), true
		}
	}
	return "", false
}
