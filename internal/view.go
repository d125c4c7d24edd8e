package internal

import (
	"fmt"
	"strings"

	"countdown_tui/internal/countdown"
	"countdown_tui/internal/runlog"
	"countdown_tui/internal/timefmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 4)

	timerTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)
)

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(60).Render("Countdown"))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(60, lipgloss.Center, m.Widget.View()))
	sb.WriteString("\n\n")
	sb.WriteString(m.statusView())
	sb.WriteString("\n")

	if len(m.Runs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Recent Runs"))
		sb.WriteString("\n")
		for _, r := range m.Runs {
			sb.WriteString(formatRun(r))
			sb.WriteString("\n")
		}
	}

	if m.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Reset: r | Slower: + | Faster: - | Quit: q"))

	return sb.String()
}

func (m *Model) statusView() string {
	var status string
	switch m.Widget.State() {
	case countdown.Running:
		status = runningStyle.Render("Running")
	case countdown.JustCompleted:
		status = inactiveStyle.Render("Finishing")
	default:
		status = doneStyle.Render("Done")
	}
	return fmt.Sprintf("%s  %s",
		status,
		inactiveStyle.Render(fmt.Sprintf("remaining %ds | tick %s | format %s",
			m.Widget.Remaining(), m.Widget.Delay(), m.Widget.Format())),
	)
}

func formatRun(r runlog.Run) string {
	timeStr := logTimeStyle.Render(fmt.Sprintf("%-14s", humanize.Time(r.CompletedAt)))
	total := timefmt.Render(r.Seconds, timefmt.HMS, false)
	return fmt.Sprintf("  %s  %s  %s", timeStr, total, inactiveStyle.Render("["+r.Format+"]"))
}
