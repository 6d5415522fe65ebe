package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#666666")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	freeStyle = lipgloss.NewStyle().
			Foreground(successColor)

	usedStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// printer groups digits the way an English reader expects.
var printer = message.NewPrinter(language.English)

// styled renders s with st unless color is disabled.
func styled(st lipgloss.Style, s string) string {
	if noColor {
		return s
	}
	return st.Render(s)
}

// heading renders a section title with an underline rule.
func heading(title string) string {
	return styled(headerStyle, title) + "\n" + styled(mutedStyle, strings.Repeat("═", len(title))) + "\n"
}

// formatNumber renders n with thousands separators.
func formatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// formatBytes renders a byte count in binary units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return printer.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return printer.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
