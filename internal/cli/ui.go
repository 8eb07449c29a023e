package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	answerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1).
			Width(80)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w, sectionStyle.Render(title))
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("─", 50)))
}

// printField prints an aligned "label: value" line.
func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%-20s %v\n", label+":", value)
}

func printAnswer(w io.Writer, speaker, text string) {
	fmt.Fprintln(w, sectionStyle.Render(speaker))
	fmt.Fprintln(w, answerStyle.Render(text))
}

func yesNo(ok bool) string {
	if ok {
		return passStyle.Render("✅ yes")
	}
	return warnStyle.Render("❌ no")
}
