package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openf1-tools/f1arc/internal/application"
)

type seasonProbedMsg application.SeasonProgress

type probeDoneMsg struct {
	years []int
}

// seasonProbeModel animates the season probe: it shows the year whose
// probe finished last and accumulates the years that had data.
type seasonProbeModel struct {
	spinner  spinner.Model
	lastYear int
	found    []int
	years    []int
	done     bool
}

func newSeasonProbeModel() seasonProbeModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return seasonProbeModel{spinner: s}
}

func (m seasonProbeModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m seasonProbeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case seasonProbedMsg:
		m.lastYear = msg.Year
		if msg.HasData {
			m.found = append(m.found, msg.Year)
		}
		return m, nil
	case probeDoneMsg:
		m.done = true
		m.years = msg.years
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m seasonProbeModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Probing seasons")
	if m.lastYear != 0 {
		fmt.Fprintf(&b, " (%d)", m.lastYear)
	}
	b.WriteString("...")
	if len(m.found) > 0 {
		labels := make([]string, len(m.found))
		for i, year := range m.found {
			labels[i] = strconv.Itoa(year)
		}
		fmt.Fprintf(&b, " found %s", strings.Join(labels, ", "))
	}
	return b.String()
}

func runSeasonProbe(ctx context.Context, output io.Writer, probe func(context.Context, func(application.SeasonProgress)) []int) ([]int, error) {
	p := tea.NewProgram(
		newSeasonProbeModel(),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	go func() {
		years := probe(ctx, func(progress application.SeasonProgress) {
			p.Send(seasonProbedMsg(progress))
		})
		p.Send(probeDoneMsg{years: years})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result, ok := finalModel.(seasonProbeModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final probe model type %T", finalModel)
	}

	return result.years, nil
}
