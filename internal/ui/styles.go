// Package ui renders batch progress and summaries on the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/farcloser/soundcheck/internal/report"
)

//nolint:gochecknoglobals // palette
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#31339E"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// RenderSummary formats the end-of-run counts. Unplayable files are only
// mentioned when there are some.
func RenderSummary(summary report.Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Summary Report:"))
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("Total files processed: %d", summary.Total)))
	b.WriteString("\n")
	b.WriteString(okStyle.Render(fmt.Sprintf("Playable files: %d", summary.Playable)))
	b.WriteString("\n")
	b.WriteString(warnStyle.Render(fmt.Sprintf("Files with clipping: %d", summary.WithClipping)))
	b.WriteString("\n")

	if summary.Unplayable > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Unplayable files: %d", summary.Unplayable)))
		b.WriteString("\n")
	}

	return b.String()
}

// Title renders a bold heading.
func Title(text string) string {
	return titleStyle.Render(text)
}

// Warning renders text in the warning colour.
func Warning(text string) string {
	return warnStyle.Render(text)
}
