package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openf1-tools/f1arc/internal/application"
)

func TestSeasonProbeModelAccumulatesFoundYears(t *testing.T) {
	m := newSeasonProbeModel()

	next, _ := m.Update(seasonProbedMsg(application.SeasonProgress{Year: 2022, HasData: false}))
	next, _ = next.Update(seasonProbedMsg(application.SeasonProgress{Year: 2023, HasData: true}))
	next, _ = next.Update(seasonProbedMsg(application.SeasonProgress{Year: 2024, HasData: true}))
	model := next.(seasonProbeModel)

	view := model.View()
	assert.Contains(t, view, "Probing seasons (2024)")
	assert.Contains(t, view, "found 2023, 2024")
	assert.NotContains(t, view, "2022")
}

func TestSeasonProbeModelQuitsOnDone(t *testing.T) {
	m := newSeasonProbeModel()

	next, cmd := m.Update(probeDoneMsg{years: []int{2023, 2024}})
	model := next.(seasonProbeModel)

	assert.NotNil(t, cmd)
	assert.Equal(t, []int{2023, 2024}, model.years)
	assert.Empty(t, model.View())
}
