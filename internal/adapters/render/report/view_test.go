package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openf1-tools/f1arc/internal/application"
)

func TestRenderCompletedRun(t *testing.T) {
	output := Render(application.Summary{
		Seasons:        []int{2023, 2024},
		TotalSessions:  48,
		TargetSessions: 29,
		Outputs: []string{
			"data/openf1_full/sessions_all.csv",
			"data/openf1_full/stints_all.csv",
		},
	}, RenderOptions{OutDir: "data/openf1_full"})

	assert.Contains(t, output, "seasons: 2023, 2024")
	assert.Contains(t, output, "sessions seen: ")
	assert.Contains(t, output, "48")
	assert.Contains(t, output, "target sessions: ")
	assert.Contains(t, output, "29")
	assert.Contains(t, output, " - data/openf1_full/sessions_all.csv")
	assert.Contains(t, output, " - data/openf1_full/stints_all.csv")
}

func TestRenderRunWithoutOutputs(t *testing.T) {
	output := Render(application.Summary{Seasons: []int{2023}}, RenderOptions{})

	assert.Contains(t, output, "seasons: 2023")
	assert.Contains(t, output, "No output files produced.")
}
