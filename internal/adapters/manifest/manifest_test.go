package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openf1-tools/f1arc/internal/application"
)

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()

	summary := application.Summary{
		Seasons:        []int{2023, 2024},
		TotalSessions:  48,
		TargetSessions: 29,
		Outputs:        []string{filepath.Join(dir, "sessions_all.csv")},
	}
	completedAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	require.NoError(t, Write(dir, FromSummary(summary, completedAt)))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	var got Run
	require.NoError(t, toml.Unmarshal(data, &got))

	assert.Equal(t, completedAt, got.CompletedAt)
	assert.Equal(t, []int{2023, 2024}, got.Seasons)
	assert.Equal(t, 48, got.TotalSessions)
	assert.Equal(t, 29, got.TargetSessions)
	assert.Equal(t, summary.Outputs, got.Outputs)
}

func TestWriteReplacesPreviousManifest(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Write(dir, Run{TotalSessions: 1}))
	require.NoError(t, Write(dir, Run{TotalSessions: 2}))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	var got Run
	require.NoError(t, toml.Unmarshal(data, &got))
	assert.Equal(t, 2, got.TotalSessions)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".run-*.toml.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
