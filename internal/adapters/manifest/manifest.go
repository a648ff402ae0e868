package manifest

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/openf1-tools/f1arc/internal/application"
)

const (
	FileName        = "run.toml"
	fileMode        = 0o644
	tempFilePattern = ".run-*.toml.tmp"
)

// Run is the on-disk record of a completed archive run, written next to
// the output files it describes.
type Run struct {
	CompletedAt    time.Time `toml:"completed_at"`
	Seasons        []int     `toml:"seasons"`
	TotalSessions  int       `toml:"total_sessions"`
	TargetSessions int       `toml:"target_sessions"`
	Outputs        []string  `toml:"outputs"`
}

func FromSummary(summary application.Summary, completedAt time.Time) Run {
	return Run{
		CompletedAt:    completedAt.UTC(),
		Seasons:        summary.Seasons,
		TotalSessions:  summary.TotalSessions,
		TargetSessions: summary.TargetSessions,
		Outputs:        summary.Outputs,
	}
}

// Write replaces the manifest at dir/run.toml via a temp file rename.
func Write(dir string, run Run) error {
	data, err := toml.Marshal(run)
	if err != nil {
		return errors.Wrap(err, "encode run manifest")
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return errors.Wrap(err, "create temp manifest")
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return errors.Wrap(err, "write temp manifest")
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return errors.Wrap(err, "chmod temp manifest")
	}
	if err := tempFile.Close(); err != nil {
		return errors.Wrap(err, "close temp manifest")
	}

	if err := os.Rename(tempName, filepath.Join(dir, FileName)); err != nil {
		return errors.Wrap(err, "replace run manifest")
	}
	cleanup = false

	return nil
}
