package portset

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
)

func FormatOutcome(o Outcome, check bool) string {
	var b strings.Builder

	style := dimStyle
	if o.Changed {
		style = successStyle
	}
	msg := o.Message
	if check && o.Changed {
		msg += " (check mode, not written)"
	}
	b.WriteString(style.Render(msg) + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", headerStyle.Render("config:"), o.Config))
	b.WriteString(fmt.Sprintf("  %s %d\n", headerStyle.Render("port:"), o.Port))

	if o.Diff != "" {
		b.WriteString("\n" + FormatDiff(o.Diff))
	}
	return b.String()
}

func FormatDiff(d string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(d, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			b.WriteString(headerStyle.Render(trimmed))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedStyle.Render(trimmed))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedStyle.Render(trimmed))
		default:
			b.WriteString(trimmed)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func FormatSummary(s Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n")
	}
	if s.Restored != "" {
		b.WriteString(successStyle.Render("Restored:") + "\n")
		b.WriteString(fmt.Sprintf("  %s\n", s.Restored))
	}
	return b.String()
}
