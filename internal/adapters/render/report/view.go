package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openf1-tools/f1arc/internal/application"
)

type RenderOptions struct {
	OutDir string
}

// Render lays out the run summary for the terminal.
func Render(summary application.Summary, opts RenderOptions) string {
	return renderView(summary, opts, newStyles())
}

func renderView(summary application.Summary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("OpenF1 archive run"),
		s.header.Render(fmt.Sprintf("seasons: %s", seasonList(summary.Seasons))),
	}

	lines = append(lines,
		countLine("sessions seen", summary.TotalSessions, s),
		countLine("target sessions", summary.TargetSessions, s),
	)

	if opts.OutDir != "" {
		lines = append(lines, s.label.Render("output: ")+s.output.Render(opts.OutDir))
	}

	if len(summary.Outputs) == 0 {
		lines = append(lines, s.empty.Render("No output files produced."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, path := range summary.Outputs {
		lines = append(lines, s.output.Render(" - "+path))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func countLine(label string, count int, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(label+": "),
		s.value.Render(strconv.Itoa(count)),
	)
}

func seasonList(years []int) string {
	if len(years) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(years))
	for _, year := range years {
		parts = append(parts, strconv.Itoa(year))
	}
	return strings.Join(parts, ", ")
}
