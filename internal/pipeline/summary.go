package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const timeRound = 100 * time.Millisecond

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	summaryOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	summaryFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderSummary formats a run summary for terminal output.
func RenderSummary(s Summary, exportPath string) string {
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Run summary") + "\n")
	sb.WriteString(fmt.Sprintf("%s %d\n", summaryLabelStyle.Render("Tickets:"), s.Total))
	sb.WriteString(fmt.Sprintf("%s %s\n", summaryLabelStyle.Render("Succeeded:"), summaryOKStyle.Render(fmt.Sprintf("%d", s.Succeeded))))
	if s.Partial > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", summaryLabelStyle.Render("Partial:"), summaryWarnStyle.Render(fmt.Sprintf("%d", s.Partial))))
	}
	if s.Failed > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", summaryLabelStyle.Render("Failed:"), summaryFailStyle.Render(fmt.Sprintf("%d", s.Failed))))
	}
	if s.Previewed > 0 {
		sb.WriteString(fmt.Sprintf("%s %d\n", summaryLabelStyle.Render("Previewed:"), s.Previewed))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", summaryLabelStyle.Render("Duration:"), s.Finished.Sub(s.Started).Round(timeRound)))
	if exportPath != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", summaryLabelStyle.Render("Export:"), exportPath))
	}
	return sb.String()
}
